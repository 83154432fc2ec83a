package resp

import (
	"io"
	"strconv"
)

// Pre-built replies for the handful of fixed responses the dispatcher sends
// on nearly every command, so the hot path allocates nothing.
var (
	nullBulk  = []byte("$-1\r\n")
	nullArray = []byte("*-1\r\n")
	pongReply = []byte("+PONG\r\n")
	okReply   = []byte("+OK\r\n")
)

// WriteSimpleString writes a RESP simple string: "+<s>\r\n".
func WriteSimpleString(w io.Writer, s string) error {
	switch s {
	case "PONG":
		_, err := w.Write(pongReply)
		return err
	case "OK":
		_, err := w.Write(okReply)
		return err
	}

	buf := make([]byte, 0, len(s)+3)
	buf = append(buf, '+')
	buf = append(buf, s...)
	buf = append(buf, '\r', '\n')
	_, err := w.Write(buf)
	return err
}

// WriteError writes a RESP error: "-<s>\r\n". s should already carry the
// conventional error-kind prefix ("ERR ", "WRONGTYPE ", ...).
func WriteError(w io.Writer, s string) error {
	buf := make([]byte, 0, len(s)+3)
	buf = append(buf, '-')
	buf = append(buf, s...)
	buf = append(buf, '\r', '\n')
	_, err := w.Write(buf)
	return err
}

// WriteInteger writes a RESP integer: ":<n>\r\n".
func WriteInteger(w io.Writer, n int64) error {
	buf := make([]byte, 0, 24)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, n, 10)
	buf = append(buf, '\r', '\n')
	_, err := w.Write(buf)
	return err
}

// WriteBulkString writes a RESP bulk string: "$<len>\r\n<bytes>\r\n". A nil
// slice is written as a zero-length bulk string, not a null bulk — callers
// that mean "missing" must call WriteNullBulk explicitly.
func WriteBulkString(w io.Writer, b []byte) error {
	buf := make([]byte, 0, len(b)+16)
	buf = append(buf, '$')
	buf = strconv.AppendInt(buf, int64(len(b)), 10)
	buf = append(buf, '\r', '\n')
	buf = append(buf, b...)
	buf = append(buf, '\r', '\n')
	_, err := w.Write(buf)
	return err
}

// WriteNullBulk writes the null bulk string: "$-1\r\n".
func WriteNullBulk(w io.Writer) error {
	_, err := w.Write(nullBulk)
	return err
}

// WriteArrayHeader writes "*<n>\r\n". Callers write the n elements
// themselves immediately afterward; this lets array replies stream
// element-by-element without building an intermediate slice.
func WriteArrayHeader(w io.Writer, n int) error {
	buf := make([]byte, 0, 16)
	buf = append(buf, '*')
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, '\r', '\n')
	_, err := w.Write(buf)
	return err
}

// WriteNullArray writes the null array: "*-1\r\n".
func WriteNullArray(w io.Writer) error {
	_, err := w.Write(nullArray)
	return err
}

// WriteBulkStringArray writes a RESP array whose elements are all bulk
// strings — the shape LRANGE, the count form of LPOP, and a BLPOP hand-off
// all reply with.
func WriteBulkStringArray(w io.Writer, items [][]byte) error {
	if err := WriteArrayHeader(w, len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := WriteBulkString(w, item); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRequest serializes args as a RESP array of bulk strings — the
// inverse of Decoder.ReadRequest. It exists for building test fixtures
// and gives the round-trip property (decode . encode . decode = decode) a
// concrete encoder to exercise.
func EncodeRequest(args [][]byte) []byte {
	out := make([]byte, 0, 32)
	out = append(out, '*')
	out = strconv.AppendInt(out, int64(len(args)), 10)
	out = append(out, '\r', '\n')
	for _, a := range args {
		out = append(out, '$')
		out = strconv.AppendInt(out, int64(len(a)), 10)
		out = append(out, '\r', '\n')
		out = append(out, a...)
		out = append(out, '\r', '\n')
	}
	return out
}
