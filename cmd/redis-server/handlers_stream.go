package main

import (
	"io"

	"github.com/rdfrn/blipkv/internal/keyspace"
	"github.com/rdfrn/blipkv/internal/resp"
)

func handleXAdd(app *application, w io.Writer, args [][]byte) {
	if len(args) < 4 || len(args)%2 != 0 {
		wrongNumberOfArgsResponse(w, "xadd")
		return
	}

	key, idSpec := args[0], args[1]
	fieldArgs := args[2:]

	fields := make([]keyspace.Field, 0, len(fieldArgs)/2)
	for i := 0; i < len(fieldArgs); i += 2 {
		fields = append(fields, keyspace.Field{Name: fieldArgs[i], Value: fieldArgs[i+1]})
	}

	id, err := app.keyspace.XAdd(string(key), string(idSpec), fields)
	if err != nil {
		genericErrorResponse(w, err.Error())
		return
	}
	_ = resp.WriteBulkString(w, []byte(id.String()))
}
