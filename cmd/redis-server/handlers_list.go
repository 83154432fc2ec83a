package main

import (
	"io"
	"strconv"
	"time"

	"github.com/rdfrn/blipkv/internal/keyspace"
	"github.com/rdfrn/blipkv/internal/resp"
)

func handleRPush(app *application, w io.Writer, args [][]byte) {
	pushHandler(app, w, args, "rpush", app.keyspace.RPush)
}

func handleLPush(app *application, w io.Writer, args [][]byte) {
	pushHandler(app, w, args, "lpush", app.keyspace.LPush)
}

func pushHandler(app *application, w io.Writer, args [][]byte, name string, push func(string, [][]byte) (int64, error)) {
	if len(args) < 2 {
		wrongNumberOfArgsResponse(w, name)
		return
	}

	n, err := push(string(args[0]), args[1:])
	if err != nil {
		wrongTypeResponse(w)
		return
	}
	_ = resp.WriteInteger(w, n)
}

func handleLLen(app *application, w io.Writer, args [][]byte) {
	if len(args) != 1 {
		wrongNumberOfArgsResponse(w, "llen")
		return
	}
	n, err := app.keyspace.LLen(string(args[0]))
	if err != nil {
		wrongTypeResponse(w)
		return
	}
	_ = resp.WriteInteger(w, n)
}

func handleLRange(app *application, w io.Writer, args [][]byte) {
	if len(args) != 3 {
		wrongNumberOfArgsResponse(w, "lrange")
		return
	}
	start, err1 := strconv.ParseInt(string(args[1]), 10, 64)
	stop, err2 := strconv.ParseInt(string(args[2]), 10, 64)
	if err1 != nil || err2 != nil {
		genericErrorResponse(w, "value is not an integer or out of range")
		return
	}

	items, err := app.keyspace.LRange(string(args[0]), start, stop)
	if err != nil {
		wrongTypeResponse(w)
		return
	}
	_ = resp.WriteBulkStringArray(w, items)
}

func handleLPop(app *application, w io.Writer, args [][]byte) {
	if len(args) != 1 && len(args) != 2 {
		wrongNumberOfArgsResponse(w, "lpop")
		return
	}

	key := string(args[0])

	if len(args) == 1 {
		val, ok, err := app.keyspace.LPopOne(key)
		if err != nil {
			wrongTypeResponse(w)
			return
		}
		if !ok {
			_ = resp.WriteNullBulk(w)
			return
		}
		_ = resp.WriteBulkString(w, val)
		return
	}

	count, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil || count < 0 {
		genericErrorResponse(w, "value is out of range, must be positive")
		return
	}

	items, err := app.keyspace.LPopN(key, count)
	if err != nil {
		wrongTypeResponse(w)
		return
	}
	_ = resp.WriteBulkStringArray(w, items)
}

// handleBLPop implements the one genuinely asynchronous command: it either
// replies immediately (an element was already waiting) or registers the
// connection as a blocked waiter and only replies once the coordinator
// resolves it, by hand-off, timeout, or server shutdown.
func handleBLPop(app *application, w io.Writer, args [][]byte) {
	if len(args) < 2 {
		wrongNumberOfArgsResponse(w, "blpop")
		return
	}

	timeoutArg := args[len(args)-1]
	keys := make([]string, len(args)-1)
	for i, k := range args[:len(args)-1] {
		keys[i] = string(k)
	}

	d, indefinite, err := keyspace.ParseBlockingTimeout(string(timeoutArg))
	if err != nil {
		genericErrorResponse(w, "timeout is not a float or out of range")
		return
	}

	var deadline time.Time
	if !indefinite {
		deadline = time.Now().Add(d)
	}

	immediate, wait, cancel := app.keyspace.TryPopOrEnqueue(keys, deadline)
	if immediate != nil {
		writeBLPopResult(w, *immediate)
		return
	}

	app.metrics.BlockedClients.Add(1)
	defer app.metrics.BlockedClients.Add(-1)

	select {
	case res := <-wait:
		writeBLPopResult(w, res)
	case <-app.shutdown:
		cancel()
		_ = resp.WriteNullArray(w)
	}
}

func writeBLPopResult(w io.Writer, res keyspace.WaitResult) {
	if !res.Woken {
		_ = resp.WriteNullArray(w)
		return
	}
	_ = resp.WriteArrayHeader(w, 2)
	_ = resp.WriteBulkString(w, []byte(res.Key))
	_ = resp.WriteBulkString(w, res.Value)
}
