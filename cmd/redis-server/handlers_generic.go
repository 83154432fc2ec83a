package main

import (
	"io"

	"github.com/rdfrn/blipkv/internal/resp"
)

func handlePing(app *application, w io.Writer, args [][]byte) {
	_ = resp.WriteSimpleString(w, "PONG")
}

func handleEcho(app *application, w io.Writer, args [][]byte) {
	if len(args) != 1 {
		wrongNumberOfArgsResponse(w, "echo")
		return
	}
	_ = resp.WriteBulkString(w, args[0])
}

func handleCommand(app *application, w io.Writer, args [][]byte) {
	// COMMAND and COMMAND DOCS both reply with an empty array: clients
	// probing capabilities at connect time just need a well-formed
	// response, not a populated command table.
	_ = resp.WriteArrayHeader(w, 0)
}

func handleType(app *application, w io.Writer, args [][]byte) {
	if len(args) != 1 {
		wrongNumberOfArgsResponse(w, "type")
		return
	}
	_ = resp.WriteSimpleString(w, app.keyspace.TypeOf(string(args[0])))
}

func handleFlushDB(app *application, w io.Writer, args [][]byte) {
	if len(args) != 0 {
		wrongNumberOfArgsResponse(w, "flushdb")
		return
	}
	app.keyspace.FlushAll()
	_ = resp.WriteSimpleString(w, "OK")
}
