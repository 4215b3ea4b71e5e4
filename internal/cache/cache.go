// Package cache provides a small in-process TTL cache. Entries expire by
// age only; there is no event-based invalidation.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a get-or-compute cache with a fixed expiry window.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetOrCompute returns the cached value for key if it is still fresh,
// otherwise runs compute, stores its result and returns it. A compute error
// is returned as-is and nothing is cached.
func (c *Cache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		return e.value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	return value, nil
}

// Invalidate drops a single entry, if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
