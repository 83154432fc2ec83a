package main

import (
	"io"
	"strings"
)

// CommandHandler is the function signature every registered command
// implements. args excludes the command name itself. Handlers write their
// reply directly to w, which is the connection's buffered writer.
type CommandHandler func(app *application, w io.Writer, args [][]byte)

// Router maps command names to their handlers.
type Router struct {
	handlers map[string]CommandHandler
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]CommandHandler)}
}

// Handle registers handler under name, case-insensitively.
func (r *Router) Handle(name string, handler CommandHandler) {
	r.handlers[strings.ToUpper(name)] = handler
}

// Dispatch looks up the handler for parts[0] and runs it against the
// remaining elements. An empty parts (an inline blank line) is a no-op.
func (r *Router) Dispatch(app *application, w io.Writer, parts [][]byte) {
	if len(parts) == 0 {
		return
	}

	app.metrics.TotalCommands.Add(1)

	name := strings.ToUpper(string(parts[0]))
	args := parts[1:]

	handler, found := r.handlers[name]
	if !found {
		unknownCommandResponse(w, name)
		return
	}
	handler(app, w, args)
}
