// Package cache holds process-local caches shared across evaluations.
package cache

import (
	"sync"
)

type Cache interface {
	Reset()
}

// ModelCache stores one immutable entry per key, typically a model trained for one instrument.
// Readers run concurrently; insertion is exclusive per cache and an existing entry is never replaced.
type ModelCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// NewModelCache creates an empty cache.
func NewModelCache[T any]() *ModelCache[T] {
	return &ModelCache[T]{
		mu:      sync.RWMutex{},
		entries: make(map[string]T),
	}
}

// Get returns the entry for key.
func (c *ModelCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]

	return value, ok
}

// GetOrCreate returns the cached entry for key, or builds it with create and stores it.
// create runs at most once per key while it succeeds; a failed build is not cached.
// The boolean reports whether the entry came from the cache.
func (c *ModelCache[T]) GetOrCreate(key string, create func() (T, error)) (T, bool, error) {
	if value, ok := c.Get(key); ok {
		return value, true, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another writer may have inserted while we waited for the lock
	if value, ok := c.entries[key]; ok {
		return value, true, nil
	}

	value, err := create()
	if err != nil {
		var zero T

		return zero, false, err
	}

	c.entries[key] = value

	return value, false, nil
}

// Len returns the number of cached entries.
func (c *ModelCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Reset implements cache.Cache.
func (c *ModelCache[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]T)
}
