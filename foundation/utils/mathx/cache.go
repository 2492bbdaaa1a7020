// File: cache.go
// Title: Append-Only Cache
// Description: Generic growable cache whose entries are computed from the
//              entries before them. Readers load an immutable snapshot
//              without locking; extension is serialized by a mutex.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package mathx

import (
	"sync"
	"sync/atomic"
)

// recurrence computes entry n from the entries 0..n-1
type recurrence[T any] func(n int, prefix []T) T

// appendOnlyCache publishes a new slice header after every extension.
// Entries below the published length are never written again, so a
// loaded snapshot stays valid while the cache keeps growing behind it.
type appendOnlyCache[T any] struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[[]T]
	next     recurrence[T]
}

func newAppendOnlyCache[T any](next recurrence[T]) *appendOnlyCache[T] {
	return &appendOnlyCache[T]{next: next}
}

func (c *appendOnlyCache[T]) load() []T {
	if s := c.snapshot.Load(); s != nil {
		return *s
	}
	return nil
}

// get returns entry i, extending the cache when needed
func (c *appendOnlyCache[T]) get(i int) T {
	if s := c.load(); i < len(s) {
		return s[i]
	}
	return c.extend(i + 1)[i]
}

// extend grows the cache to at least n entries and returns the snapshot
func (c *appendOnlyCache[T]) extend(n int) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.load()
	if len(s) >= n {
		return s
	}
	for len(s) < n {
		s = append(s, c.next(len(s), s))
	}
	c.snapshot.Store(&s)
	return s
}

func (c *appendOnlyCache[T]) size() int {
	return len(c.load())
}
