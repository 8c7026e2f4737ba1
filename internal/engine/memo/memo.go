// Package memo caches pure derivations keyed by their inputs.
package memo

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/linescope/linescope/internal/utils"
)

const defaultCacheSize = 32

// Cache remembers the results of a derivation for recently seen keys. Keys
// must be comparable and capture every input of the derivation.
type Cache[K comparable, V any] struct {
	name  string
	cache *lru.Cache

	hits, misses int
}

// New creates a cache holding up to size results.
func New[K comparable, V any](name string, size int) (*Cache[K, V], error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{name: name, cache: c}, nil
}

// MustNew is New for sizes known to be valid.
func MustNew[K comparable, V any](name string, size int) *Cache[K, V] {
	c, err := New[K, V](name, size)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the cached value for key, computing and storing it on a miss.
func (c *Cache[K, V]) Get(key K, compute func() V) V {
	if v, ok := c.cache.Get(key); ok {
		c.hits++
		return v.(V)
	}
	c.misses++
	utils.Debug("memo %s: recomputing", c.name)
	v := compute()
	c.cache.Add(key, v)
	return v
}

// Purge drops every cached value.
func (c *Cache[K, V]) Purge() { c.cache.Purge() }

// Len returns the number of cached values.
func (c *Cache[K, V]) Len() int { return c.cache.Len() }

// Stats returns the hit and miss counters.
func (c *Cache[K, V]) Stats() (hits, misses int) { return c.hits, c.misses }
