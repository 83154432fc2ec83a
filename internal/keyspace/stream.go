package keyspace

import (
	"strconv"
	"strings"
)

// StreamID is a stream entry identifier: a millisecond timestamp paired
// with a sequence number that disambiguates entries added within the same
// millisecond. IDs are ordered lexicographically by (Ms, Seq).
type StreamID struct {
	Ms  uint64
	Seq uint64
}

func (id StreamID) String() string {
	return strconv.FormatUint(id.Ms, 10) + "-" + strconv.FormatUint(id.Seq, 10)
}

func (id StreamID) less(other StreamID) bool {
	if id.Ms != other.Ms {
		return id.Ms < other.Ms
	}
	return id.Seq < other.Seq
}

func (id StreamID) isZero() bool { return id.Ms == 0 && id.Seq == 0 }

// Field is one name/value pair within a stream entry.
type Field struct {
	Name  []byte
	Value []byte
}

// StreamEntry is one record appended to a stream: the ID it was assigned
// and the field/value pairs supplied with XADD.
type StreamEntry struct {
	ID     StreamID
	Fields []Field
}

// streamValue is the append-only log backing a single stream key.
type streamValue struct {
	entries []StreamEntry
	lastID  StreamID
}

func (s *shard) getOrCreateStreamLocked(key string) (*entry, error) {
	e := s.lookupLockedNow(key)
	if e == nil {
		e = &entry{kind: kindStream, str2: &streamValue{}}
		s.data[key] = e
		return e, nil
	}
	if e.kind != kindStream {
		return nil, ErrWrongType
	}
	return e, nil
}

// XAdd appends one entry to the stream at key, assigning or validating its
// ID according to idSpec, which must be either:
//
//   - "<ms>-<seq>", used verbatim and checked for strict monotonicity
//     against the stream's current last ID, or
//   - "<ms>-*", which auto-assigns the sequence part per the rules in
//     resolveAutoSeq.
//
// Any other form is a format error. The stream is created if it does not
// already exist.
func (ks *Keyspace) XAdd(key string, idSpec string, fields []Field) (StreamID, error) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getOrCreateStreamLocked(key)
	if err != nil {
		return StreamID{}, err
	}
	sv := e.str2

	id, err := resolveStreamID(idSpec, sv.lastID, len(sv.entries) == 0)
	if err != nil {
		return StreamID{}, err
	}

	sv.entries = append(sv.entries, StreamEntry{ID: id, Fields: fields})
	sv.lastID = id
	return id, nil
}

// resolveStreamID turns idSpec into a concrete StreamID to append, against
// last (the stream's current last ID; meaningless when streamEmpty is
// true).
func resolveStreamID(idSpec string, last StreamID, streamEmpty bool) (StreamID, error) {
	if ms, ok := strings.CutSuffix(idSpec, "-*"); ok {
		msVal, err := parseNonNegativeInt(ms)
		if err != nil {
			return StreamID{}, ErrInvalidStreamID
		}
		return resolveAutoSeq(last, msVal, streamEmpty)
	}

	id, err := parseExplicitStreamID(idSpec)
	if err != nil {
		return StreamID{}, err
	}
	if id.isZero() {
		return StreamID{}, ErrStreamIDZero
	}
	if !streamEmpty && !last.less(id) {
		return StreamID{}, ErrStreamIDTooSmall
	}
	return id, nil
}

// resolveAutoSeq implements the XADD auto-seq resolution pipeline: on an
// empty stream, ms=0 maps to 0-1 (the one case that would otherwise land on
// the forbidden 0-0) and any other ms maps to ms-0; on a non-empty stream,
// a strictly later ms resets the sequence to 0, an equal ms bumps it, and
// an earlier ms is a monotonicity failure.
func resolveAutoSeq(last StreamID, ms uint64, streamEmpty bool) (StreamID, error) {
	if streamEmpty {
		if ms == 0 {
			return StreamID{Ms: 0, Seq: 1}, nil
		}
		return StreamID{Ms: ms, Seq: 0}, nil
	}

	switch {
	case ms > last.Ms:
		return StreamID{Ms: ms, Seq: 0}, nil
	case ms == last.Ms:
		return StreamID{Ms: last.Ms, Seq: last.Seq + 1}, nil
	default:
		return StreamID{}, ErrStreamIDTooSmall
	}
}

// parseExplicitStreamID parses the "<ms>-<seq>" form; both parts are
// required non-negative decimal integers.
func parseExplicitStreamID(s string) (StreamID, error) {
	ms, seqPart, hasSeq := strings.Cut(s, "-")
	if !hasSeq {
		return StreamID{}, ErrInvalidStreamID
	}

	msVal, err := parseNonNegativeInt(ms)
	if err != nil {
		return StreamID{}, ErrInvalidStreamID
	}
	seqVal, err := parseNonNegativeInt(seqPart)
	if err != nil {
		return StreamID{}, ErrInvalidStreamID
	}
	return StreamID{Ms: msVal, Seq: seqVal}, nil
}

func parseNonNegativeInt(s string) (uint64, error) {
	if s == "" {
		return 0, ErrInvalidStreamID
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidStreamID
	}
	return v, nil
}

// StreamLen reports the number of entries in the stream at key, or 0 if the
// key does not exist.
func (ks *Keyspace) StreamLen(key string) (int64, error) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLockedNow(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != kindStream {
		return 0, ErrWrongType
	}
	return int64(len(e.str2.entries)), nil
}
