package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds a built value and when it was built.
type cacheEntry[V any] struct {
	value V
	built time.Time
}

// Cache keeps expensive-to-build values, such as loaded legacy sources, for a TTL.
// Concurrent misses for the same key share a single build.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache whose entries expire after ttl.
// If ttl is zero, every call rebuilds (concurrent calls still share one build).
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]cacheEntry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache[V]) fresh(key string) (V, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || c.ttl == 0 || c.now().Sub(entry.built) > c.ttl {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// GetOrBuild retrieves the value for key, or builds it if it doesn't exist or has expired.
// Uses singleflight to prevent cache stampedes.
func (c *Cache[V]) GetOrBuild(ctx context.Context, key string, build func(context.Context) (V, error)) (V, error) {
	// Fast path: check if cache exists and is fresh
	if v, ok := c.fresh(key); ok {
		return v, nil
	}

	// Slow path: build using singleflight to prevent stampedes
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if v, ok := c.fresh(key); ok {
			return v, nil
		}

		value, err := build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.prune()
		c.entries[key] = cacheEntry[V]{value: value, built: c.now()}
		c.mu.Unlock()

		return value, nil
	})

	if err != nil {
		var zero V
		return zero, err
	}

	return result.(V), nil
}

// prune drops expired entries. Callers hold mu.
func (c *Cache[V]) prune() {
	now := c.now()
	for key, entry := range c.entries {
		if c.ttl == 0 || now.Sub(entry.built) > c.ttl {
			delete(c.entries, key)
		}
	}
}

// Invalidate removes the value for key from the cache.
// This is useful for testing or forcing a rebuild.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
