package keyspace

import "time"

// listValue is a simple ordered deque of byte-string elements. Index 0 is
// the head (the end BLPOP/LPOP read from); the tail grows with RPUSH.
type listValue struct {
	items [][]byte
}

// lookupLockedNow is lookupLocked using the current time; a small helper so
// list/stream code doesn't need to call time.Now() at every call site.
func (s *shard) lookupLockedNow(key string) *entry {
	return s.lookupLocked(key, time.Now())
}

func (s *shard) getOrCreateListLocked(key string) (*entry, error) {
	e := s.lookupLockedNow(key)
	if e == nil {
		e = &entry{kind: kindList, list: &listValue{}}
		s.data[key] = e
		return e, nil
	}
	if e.kind != kindList {
		return nil, ErrWrongType
	}
	return e, nil
}

// RPush appends values, in order, to the tail of the list at key, creating
// the list if necessary, then hands off as many of the newly added values
// as possible to any BLPOP callers already queued on key. It returns the
// list's length after the push, counted before any hand-off to waiters.
func (ks *Keyspace) RPush(key string, values [][]byte) (int64, error) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getOrCreateListLocked(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		e.list.items = append(e.list.items, append([]byte(nil), v...))
	}
	n := int64(len(e.list.items))
	s.dispatchWaitersLocked(key, e)
	return n, nil
}

// LPush prepends values to the head of the list at key. The first supplied
// value ends up closest to the rest of the existing list, and the last
// supplied value ends up at the very head — so "LPUSH k a b c" followed by
// a full range read yields [c, b, a, ...].
func (ks *Keyspace) LPush(key string, values [][]byte) (int64, error) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getOrCreateListLocked(key)
	if err != nil {
		return 0, err
	}

	prepend := make([][]byte, len(values))
	for i, v := range values {
		prepend[len(values)-1-i] = append([]byte(nil), v...)
	}
	e.list.items = append(prepend, e.list.items...)

	n := int64(len(e.list.items))
	s.dispatchWaitersLocked(key, e)
	return n, nil
}

// LLen reports the length of the list at key, or 0 if the key does not
// exist. It is an error if the key holds a non-list value.
func (ks *Keyspace) LLen(key string) (int64, error) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLockedNow(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != kindList {
		return 0, ErrWrongType
	}
	return int64(len(e.list.items)), nil
}

// LRange returns the elements between start and stop (inclusive), using
// Redis's negative-index convention: -1 is the last element, -2 the
// second-to-last, and so on. An out-of-range or empty selection returns an
// empty, non-nil slice rather than an error.
func (ks *Keyspace) LRange(key string, start, stop int64) ([][]byte, error) {
	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLockedNow(key)
	if e == nil {
		return [][]byte{}, nil
	}
	if e.kind != kindList {
		return nil, ErrWrongType
	}

	n := int64(len(e.list.items))
	start = normalizeIndex(start, n)
	stop = normalizeIndex(stop, n)
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || n == 0 {
		return [][]byte{}, nil
	}

	out := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, append([]byte(nil), e.list.items[i]...))
	}
	return out, nil
}

func normalizeIndex(idx, n int64) int64 {
	if idx < 0 {
		idx = n + idx
	}
	return idx
}

// LPopOne removes and returns the head element of the list at key. ok is
// false if the key does not exist or the list is empty.
func (ks *Keyspace) LPopOne(key string) (val []byte, ok bool, err error) {
	vals, err := ks.LPopN(key, 1)
	if err != nil || len(vals) == 0 {
		return nil, false, err
	}
	return vals[0], true, nil
}

// LPopN removes and returns up to count elements from the head of the list
// at key. Fewer than count elements are returned if the list is shorter; an
// empty slice (not an error) is returned if the key does not exist. A list
// drained to zero length is removed from the keyspace entirely.
func (ks *Keyspace) LPopN(key string, count int64) ([][]byte, error) {
	if count <= 0 {
		return [][]byte{}, nil
	}

	s := ks.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookupLockedNow(key)
	if e == nil {
		return [][]byte{}, nil
	}
	if e.kind != kindList {
		return nil, ErrWrongType
	}

	n := int64(len(e.list.items))
	if count > n {
		count = n
	}
	out := make([][]byte, count)
	copy(out, e.list.items[:count])
	e.list.items = e.list.items[count:]

	if len(e.list.items) == 0 {
		delete(s.data, key)
	}
	return out, nil
}

// dispatchWaitersLocked hands as many list elements as possible, from the
// head, to waiters queued on key, in FIFO order. It runs inside the same
// shard lock as the push that triggered it, which is what guarantees a
// waiter and a racing LPOP can never both believe they consumed the same
// element.
func (s *shard) dispatchWaitersLocked(key string, e *entry) {
	q := s.waiters[key]
	for len(q) > 0 && len(e.list.items) > 0 {
		w := q[0]
		q = q[1:]

		if w.tryDeliver(key, e.list.items[0]) {
			e.list.items = e.list.items[1:]
		}
		// A waiter that lost the race (already resolved via another
		// key or its own deadline) is simply dropped from the queue
		// here without consuming an element.
	}

	if len(q) == 0 {
		delete(s.waiters, key)
	} else {
		s.waiters[key] = q
	}

	if len(e.list.items) == 0 {
		delete(s.data, key)
	}
}
