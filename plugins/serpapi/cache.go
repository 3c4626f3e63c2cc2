package serpapi

import (
	"fmt"
	"sync"
	"time"
)

// defaultCacheTTL bounds how long a search result is reused. Flight and
// hotel inventory goes stale quickly.
const defaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// SimpleCache is a thread-safe in-memory cache for search results
type SimpleCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewSimpleCache creates a new cache instance
func NewSimpleCache() *SimpleCache {
	return &SimpleCache{entries: make(map[string]cacheEntry)}
}

// Get retrieves a value from the cache, treating expired entries as absent
func (c *SimpleCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Set stores a value with a TTL, sweeping out expired entries as it goes
func (c *SimpleCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: now.Add(ttl)}
}

func cacheKey(prefix string, params ...interface{}) string {
	return fmt.Sprintf("%s:%v", prefix, params)
}
