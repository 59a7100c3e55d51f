package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory verdict caching
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a verdict from the cache
func (c *MemoryCache) Get(key string) (Verdict, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(Verdict), true
	}
	return Verdict{}, false
}

// Set stores a verdict with the default TTL
func (c *MemoryCache) Set(key string, v Verdict) {
	c.cache.SetDefault(key, v)
}

// Flush removes all cached verdicts
func (c *MemoryCache) Flush() {
	c.cache.Flush()
}
