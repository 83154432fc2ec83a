// Package keyspace implements the server's single in-memory store: string
// values with optional TTL, lists supporting blocking pops, and append-only
// streams.
//
// The store is sharded into a fixed number of independently locked
// partitions, the same way the teacher's Store/Shard design reduces
// contention across unrelated keys. A key's list data and its blocking-pop
// waiter queue live in the same shard, so a single shard lock is always
// enough to keep a push and a waiting BLPOP from observing each other
// halfway through.
package keyspace

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 256

type kind int

const (
	kindString kind = iota
	kindList
	kindStream
)

// TypeName returns the wire-visible type name TYPE reports for k.
func (k kind) TypeName() string {
	switch k {
	case kindString:
		return "string"
	case kindList:
		return "list"
	case kindStream:
		return "stream"
	default:
		return "none"
	}
}

// entry is the value stored under a key, tagged with which of the three
// supported shapes it holds. Only one of str/list/str2 (the stream) is ever
// populated.
type entry struct {
	kind      kind
	str       []byte
	expiresAt time.Time // zero value means no TTL

	list *listValue
	str2 *streamValue
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// shard is one independently locked partition of the keyspace. waiters is
// keyed by the same key namespace as data: a BLPOP queued against "mylist"
// and an RPUSH to "mylist" always land in the same shard, so mu is the one
// lock that needs to be held to keep the two consistent.
type shard struct {
	mu      sync.Mutex
	data    map[string]*entry
	waiters map[string][]*Waiter
}

// Keyspace is the server's whole data store.
type Keyspace struct {
	shards [shardCount]*shard
}

// New returns an empty Keyspace.
func New() *Keyspace {
	ks := &Keyspace{}
	for i := range ks.shards {
		ks.shards[i] = &shard{
			data:    make(map[string]*entry),
			waiters: make(map[string][]*Waiter),
		}
	}
	return ks
}

func (ks *Keyspace) shardFor(key string) *shard {
	h := xxhash.Sum64String(key)
	return ks.shards[h%uint64(shardCount)]
}

// lookupLocked returns the live, non-expired entry for key, deleting it
// first if it has lazily expired. Callers must hold s.mu.
func (s *shard) lookupLocked(key string, now time.Time) *entry {
	e, ok := s.data[key]
	if !ok {
		return nil
	}
	if e.expired(now) {
		delete(s.data, key)
		return nil
	}
	return e
}

// TypeOf reports the wire TYPE name for key: "string", "list", "stream", or
// "none" if the key does not exist or has expired.
func (ks *Keyspace) TypeOf(key string) string {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLocked(key, time.Now())
	if e == nil {
		return "none"
	}
	return e.kind.TypeName()
}

// GetString returns the string stored under key. ok is false if the key
// does not exist or has expired; err is ErrWrongType if it holds a list or
// stream.
func (ks *Keyspace) GetString(key string) (val []byte, ok bool, err error) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLocked(key, time.Now())
	if e == nil {
		return nil, false, nil
	}
	if e.kind != kindString {
		return nil, false, ErrWrongType
	}
	return append([]byte(nil), e.str...), true, nil
}

// NoTTL is passed to SetString to mean the key never expires. Any other
// value, including zero, is a real TTL relative to now — a zero TTL sets a
// key that is already expired on the very next read, matching the wire
// protocol's PX 0.
const NoTTL time.Duration = -1

// SetString stores val under key as a string, replacing whatever was there
// (of any type).
func (ks *Keyspace) SetString(key string, val []byte, ttl time.Duration) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &entry{kind: kindString, str: append([]byte(nil), val...)}
	if ttl != NoTTL {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.data[key] = e
}

// FlushAll discards every key across every shard.
func (ks *Keyspace) FlushAll() {
	for _, s := range ks.shards {
		s.mu.Lock()
		s.data = make(map[string]*entry)
		// Waiters are left queued: FLUSHDB clearing list data does not
		// constitute a push, so blocked BLPOP callers keep waiting on
		// their original deadlines rather than being woken with nothing
		// to deliver.
		s.mu.Unlock()
	}
}
