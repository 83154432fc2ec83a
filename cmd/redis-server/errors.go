package main

import (
	"fmt"
	"io"

	"github.com/rdfrn/blipkv/internal/resp"
)

func wrongTypeResponse(w io.Writer) {
	_ = resp.WriteError(w, "WRONGTYPE Operation against a key holding the wrong kind of value")
}

func unknownCommandResponse(w io.Writer, commandName string) {
	_ = resp.WriteError(w, fmt.Sprintf("ERR unknown command '%s'", commandName))
}

func wrongNumberOfArgsResponse(w io.Writer, commandName string) {
	_ = resp.WriteError(w, fmt.Sprintf("ERR wrong number of arguments for '%s' command", commandName))
}

func genericErrorResponse(w io.Writer, msg string) {
	_ = resp.WriteError(w, "ERR "+msg)
}
