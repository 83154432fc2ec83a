package main

// commands builds the dispatch table for the server's closed command set.
func (app *application) commands() *Router {
	r := NewRouter()

	r.Handle("PING", handlePing)
	r.Handle("ECHO", handleEcho)
	r.Handle("COMMAND", handleCommand)
	r.Handle("TYPE", handleType)
	r.Handle("SET", handleSet)
	r.Handle("GET", handleGet)
	r.Handle("RPUSH", handleRPush)
	r.Handle("LPUSH", handleLPush)
	r.Handle("LLEN", handleLLen)
	r.Handle("LRANGE", handleLRange)
	r.Handle("LPOP", handleLPop)
	r.Handle("BLPOP", handleBLPop)
	r.Handle("XADD", handleXAdd)
	r.Handle("FLUSHDB", handleFlushDB)

	return r
}
