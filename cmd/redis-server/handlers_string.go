package main

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rdfrn/blipkv/internal/keyspace"
	"github.com/rdfrn/blipkv/internal/resp"
)

func handleSet(app *application, w io.Writer, args [][]byte) {
	if len(args) != 2 && len(args) != 4 {
		wrongNumberOfArgsResponse(w, "set")
		return
	}

	key, val := args[0], args[1]
	ttl := keyspace.NoTTL

	if len(args) == 4 {
		if strings.ToUpper(string(args[2])) != "PX" {
			genericErrorResponse(w, "syntax error")
			return
		}
		ms, err := strconv.ParseInt(string(args[3]), 10, 64)
		if err != nil || ms < 0 {
			genericErrorResponse(w, "value is not an integer or out of range")
			return
		}
		ttl = time.Duration(ms) * time.Millisecond
	}

	app.keyspace.SetString(string(key), val, ttl)
	_ = resp.WriteSimpleString(w, "OK")
}

func handleGet(app *application, w io.Writer, args [][]byte) {
	if len(args) != 1 {
		wrongNumberOfArgsResponse(w, "get")
		return
	}

	val, ok, err := app.keyspace.GetString(string(args[0]))
	if err != nil {
		wrongTypeResponse(w)
		return
	}
	if !ok {
		_ = resp.WriteNullBulk(w)
		return
	}
	_ = resp.WriteBulkString(w, val)
}
