package analytics

import (
	"sync"
	"time"
)

// Cloner is implemented by values that can produce an independent deep copy.
type Cloner[T any] interface {
	Clone() T
}

type cacheEntry[V any] struct {
	createdAt time.Time
	value     V
}

// SnapshotCache is a TTL cache that stores and hands out deep copies.
// An entry is visible while now - createdAt <= ttl; expired entries are
// evicted when next read.
type SnapshotCache[K comparable, V Cloner[V]] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[K]cacheEntry[V]
}

// NewSnapshotCache creates a cache. A nil clock uses time.Now.
func NewSnapshotCache[K comparable, V Cloner[V]](ttl time.Duration, now func() time.Time) *SnapshotCache[K, V] {
	if now == nil {
		now = time.Now
	}
	return &SnapshotCache[K, V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[K]cacheEntry[V]),
	}
}

// TTL returns the configured time to live.
func (c *SnapshotCache[K, V]) TTL() time.Duration {
	return c.ttl
}

// Get returns a copy of the value stored under key, if present and fresh.
func (c *SnapshotCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return entry.value.Clone(), true
}

// Set stores a copy of value under key.
func (c *SnapshotCache[K, V]) Set(key K, value V) {
	v := value.Clone()
	c.mu.Lock()
	c.entries[key] = cacheEntry[V]{createdAt: c.now(), value: v}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *SnapshotCache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]cacheEntry[V])
	c.mu.Unlock()
}

// Len returns the number of stored entries, fresh or not.
func (c *SnapshotCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
