package cadence

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type generationKey[K comparable] struct {
	generation uint64
	key        K
}

// Cache holds surface-dependent resources. Entries are keyed by the
// surface generation they were built for, so after an invalidation
// every lookup misses and rebuilds; stale entries age out of the LRU
// through their eviction callback.
type Cache[K comparable, V any] struct {
	guard   *Guard
	entries *lru.Cache[generationKey[K], V]
}

// NewCache creates a cache bound to the guard's surface generation.
// onEvict, if non-nil, releases a value when it falls out of the cache.
func NewCache[K comparable, V any](guard *Guard, size int, onEvict func(V)) *Cache[K, V] {
	// the lru constructor rejects non-positive sizes
	if size <= 0 {
		size = 16
	}

	var evict func(generationKey[K], V)
	if onEvict != nil {
		evict = func(_ generationKey[K], v V) {
			onEvict(v)
		}
	}

	entries, _ := lru.NewWithEvict(size, evict)

	return &Cache[K, V]{guard: guard, entries: entries}
}

// Get looks up a value built for the current surface generation.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.entries.Get(generationKey[K]{c.guard.Generation(), key})
}

// GetOrCreate returns the cached value for the current generation,
// building and storing it on a miss.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	gk := generationKey[K]{c.guard.Generation(), key}

	if v, ok := c.entries.Get(gk); ok {
		return v, nil
	}

	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}

	c.entries.Add(gk, v)

	return v, nil
}

// Purge drops every entry, running the eviction callback for each.
func (c *Cache[K, V]) Purge() {
	c.entries.Purge()
}

// Len reports the number of entries, stale generations included.
func (c *Cache[K, V]) Len() int {
	return c.entries.Len()
}
