package main

import "sync/atomic"

// Metrics tracks coarse server-wide counters. TotalConnections and
// TotalCommands are logged on shutdown; BlockedClients is a gauge of clients
// currently parked in BLPOP and is not logged. Updated from the hot path, so
// every field is accessed atomically rather than behind a lock.
type Metrics struct {
	TotalConnections atomic.Uint64
	TotalCommands    atomic.Uint64
	BlockedClients   atomic.Int64
}

// NewMetrics returns a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}
