package main

import (
	"flag"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of an optional YAML config file, loaded before
// command-line flags are parsed so that flags always have the final say.
// Durations are expressed as plain seconds rather than Go duration strings:
// yaml.v3 has no built-in time.Duration decoding, and a config format that
// only works by accident of a lenient parser is worse than one that is
// honest about what it accepts.
type fileConfig struct {
	Port             *int `yaml:"port"`
	MaxConnections   *int `yaml:"max_connections"`
	ShutdownTimeoutS *int `yaml:"shutdown_timeout_seconds"`
	IdleTimeoutS     *int `yaml:"idle_timeout_seconds"`
}

type config struct {
	port            int
	maxConnections  int
	shutdownTimeout time.Duration
	idleTimeout     time.Duration
	configPath      string
}

// loadConfig builds the server configuration from, in increasing order of
// precedence: built-in defaults, an optional YAML file named by -config,
// then command-line flags.
func loadConfig(args []string) (config, error) {
	cfg := config{
		port:            6379,
		maxConnections:  1000,
		shutdownTimeout: 5 * time.Second,
		idleTimeout:     0,
	}

	fs := flag.NewFlagSet("redis-server", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional path to a YAML config file")
	port := fs.Int("port", cfg.port, "TCP server port")
	maxConn := fs.Int("max-conn", cfg.maxConnections, "maximum concurrent connections")
	shutdownTimeout := fs.Duration("shutdown-timeout", cfg.shutdownTimeout, "graceful shutdown timeout")
	idleTimeout := fs.Duration("idle-timeout", cfg.idleTimeout, "idle client connection timeout (0 for no timeout)")

	// A first, silent pass just to find -config before the real parse, so
	// a file value can seed the flag defaults and still be overridden by
	// an explicit flag on the real command line.
	peek := flag.NewFlagSet("redis-server-peek", flag.ContinueOnError)
	peek.SetOutput(discardWriter{})
	peekPath := peek.String("config", "", "")
	_ = peek.Parse(args)

	if *peekPath != "" {
		fc, err := readFileConfig(*peekPath)
		if err != nil {
			return config{}, err
		}
		applyFileConfig(fc, port, maxConn, shutdownTimeout, idleTimeout)
	}

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg.configPath = *configPath
	cfg.port = *port
	cfg.maxConnections = *maxConn
	cfg.shutdownTimeout = *shutdownTimeout
	cfg.idleTimeout = *idleTimeout
	return cfg, nil
}

func readFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

func applyFileConfig(fc fileConfig, port, maxConn *int, shutdownTimeout, idleTimeout *time.Duration) {
	if fc.Port != nil {
		*port = *fc.Port
	}
	if fc.MaxConnections != nil {
		*maxConn = *fc.MaxConnections
	}
	if fc.ShutdownTimeoutS != nil {
		*shutdownTimeout = time.Duration(*fc.ShutdownTimeoutS) * time.Second
	}
	if fc.IdleTimeoutS != nil {
		*idleTimeout = time.Duration(*fc.IdleTimeoutS) * time.Second
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
