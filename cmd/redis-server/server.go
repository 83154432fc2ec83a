package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rdfrn/blipkv/internal/resp"
)

const (
	writeTimeout              = 5 * time.Second
	rejectionTimeout          = 500 * time.Millisecond
	errMaxConnectionsResponse = "-ERR max number of clients reached\r\n"
)

// serve starts the TCP server and blocks until shutdown.
//
// Connections are capped by connLimiter, a buffered channel used as a
// semaphore: a non-blocking send is a try-acquire, and a full buffer means
// the connection is rejected outright rather than queued. On SIGINT or
// SIGTERM, the listener is closed first (so no new connections are
// accepted), app.shutdown is closed (so BLPOP callers stuck waiting on the
// coordinator unblock themselves instead of holding the handler open
// forever), and then the accept loop waits for in-flight handlers to drain
// up to config.shutdownTimeout.
func (app *application) serve() error {
	addr := fmt.Sprintf(":%d", app.config.port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	app.listener = ln

	serverAddr := ln.Addr().String()

	if app.readyCh != nil {
		close(app.readyCh)
	}

	shutdownError := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("caught signal", "signal", s.String(), "address", serverAddr)
		app.logger.Info("shutting down server", "address", serverAddr)

		ctx, cancel := context.WithTimeout(context.Background(), app.config.shutdownTimeout)
		defer cancel()

		if err := ln.Close(); err != nil {
			shutdownError <- err
		}
		close(app.shutdown)

		wgDone := make(chan struct{})
		go func() {
			app.wg.Wait()
			close(wgDone)
		}()

		select {
		case <-wgDone:
			shutdownError <- nil
		case <-ctx.Done():
			shutdownError <- ctx.Err()
		}
	}()

	defer func() {
		app.logger.Info("final metrics",
			"total_connections", app.metrics.TotalConnections.Load(),
			"total_commands", app.metrics.TotalCommands.Load(),
		)
	}()

	app.logger.Info("server starting", "address", serverAddr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			app.logger.Error("failed to accept connection", "error", err, "address", serverAddr)
			continue
		}

		select {
		case app.connLimiter <- struct{}{}:
			app.wg.Add(1)
			go app.handleConnection(conn)
		default:
			app.logger.Info("rejecting connection, limit reached", "remote_addr", conn.RemoteAddr().String())

			// Security: set a strict deadline to prevent a slowloris-style
			// DoS where a client refuses to read the rejection and blocks
			// the accept loop.
			_ = conn.SetWriteDeadline(time.Now().Add(rejectionTimeout))
			_, _ = conn.Write([]byte(errMaxConnectionsResponse))
			_ = conn.Close()
		}
	}

	err = <-shutdownError
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		app.logger.Error("server stopped with error", "error", err, "address", serverAddr)
		return err
	}

	app.logger.Info("server stopped gracefully", "address", serverAddr)
	return nil
}

// handleConnection services one client connection: decode a request,
// dispatch it, encode the reply, repeat.
//
// Writes go through a buffered writer with a "smart flush": after
// dispatching a command, the handler only flushes if the decoder's
// internal buffer is empty. A pipelining client that sent several requests
// in one read keeps its responses batched into a single write syscall
// until the decoder actually runs dry.
func (app *application) handleConnection(conn net.Conn) {
	defer func() { <-app.connLimiter }()
	defer app.wg.Done()
	defer func() { _ = conn.Close() }()

	remoteAddr := conn.RemoteAddr().String()

	// A panic while servicing one connection must not take down the
	// others sharing this process: recover, log, and let the deferred
	// close above drop just this connection.
	defer func() {
		if r := recover(); r != nil {
			app.logger.Error("panic in connection handler", "error", r, "remote_addr", remoteAddr)
		}
	}()

	app.metrics.TotalConnections.Add(1)

	app.logger.Info("new connection", "remote_addr", remoteAddr)

	dec := resp.NewDecoder(conn)
	writer := bufio.NewWriterSize(conn, 4096)

	defer func() { _ = writer.Flush() }()

	if app.config.idleTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(app.config.idleTimeout)); err != nil {
			app.logger.Error("failed to set initial read deadline", "error", err, "remote_addr", remoteAddr)
			return
		}
	}

	for {
		if app.config.idleTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(app.config.idleTimeout)); err != nil {
				app.logger.Error("failed to set read deadline", "error", err, "remote_addr", remoteAddr)
				return
			}
		}

		parts, err := dec.ReadRequest()
		if err != nil {
			if err == io.EOF {
				app.logger.Info("client disconnected", "remote_addr", remoteAddr)
			} else {
				app.logger.Error("protocol error", "error", err, "remote_addr", remoteAddr)
			}
			return
		}

		app.router.Dispatch(app, writer, parts)

		if dec.Buffered() == 0 {
			if err := writer.Flush(); err != nil {
				app.logger.Error("failed to flush response", "error", err, "remote_addr", remoteAddr)
				return
			}
		}
	}
}
