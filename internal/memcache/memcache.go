// Package memcache provides the process-local fallback cache that keeps the
// last fetched payload per key for the lifetime of the process.
package memcache

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

// Entry is a single cached payload and the time it was stored.
type Entry struct {
	Key       string
	Data      json.RawMessage
	Timestamp time.Time
}

// Cache is a concurrency-safe map from cache key to JSON payload.
//
// With a zero TTL entries never expire. With a positive TTL an entry older
// than the TTL is treated as absent and removed on the read that observes it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the read-time expiry for entries.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the payload stored under key.
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.ttl > 0 && c.now().Sub(e.Timestamp) > c.ttl {
		c.mu.Lock()
		// Only evict if nobody replaced it in between.
		if cur, ok := c.entries[key]; ok && cur.Timestamp.Equal(e.Timestamp) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.Data, true
}

// Set stores data under key, overwriting any previous entry.
func (c *Cache) Set(key string, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Key: key, Data: data, Timestamp: c.now()}
}

// Clear removes a single key.
func (c *Cache) Clear(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// ClearAll removes every entry.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// Stats returns the number of entries and their keys in sorted order.
func (c *Cache) Stats() model.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return model.CacheStats{Size: len(keys), Keys: keys}
}
