// main.go is the entry point for the server. It loads configuration,
// builds the in-memory keyspace, and runs the TCP server until shutdown.
package main

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/rdfrn/blipkv/internal/keyspace"
)

type application struct {
	config      config
	logger      *slog.Logger
	listener    net.Listener
	keyspace    *keyspace.Keyspace
	router      *Router
	metrics     *Metrics
	readyCh     chan struct{}
	wg          sync.WaitGroup
	connLimiter chan struct{}
	shutdown    chan struct{}
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app := &application{
		config:      cfg,
		logger:      logger,
		keyspace:    keyspace.New(),
		metrics:     NewMetrics(),
		connLimiter: make(chan struct{}, cfg.maxConnections),
		shutdown:    make(chan struct{}),
	}

	app.router = app.commands()

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
