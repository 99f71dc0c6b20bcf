// Package cache provides result caching for the engine façade: an in-memory
// LRU+TTL cache for Search, and a bbolt-backed persistent cache for the CLI
// discover command.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"silkmoth/internal/domain"
)

// QueryCache caches Search results keyed by the reference set's content and
// the engine's current configuration, with LRU eviction and TTL expiry.
// Mutating a configuration knob (delta, alpha, sig type, ...) bumps the
// generation counter and invalidates every entry in one step.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	gen     uint64
}

type cacheEntry struct {
	result    domain.SearchResult
	timestamp time.Time
	gen       uint64
}

// NewQueryCache creates a query cache. maxSize <= 0 defaults to 100 entries;
// ttl <= 0 defaults to 5 minutes.
func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// cacheKey hashes the reference set's raw elements into a stable key.
func cacheKey(refSet domain.RawSet) string {
	h := sha256.New()
	for _, elem := range refSet {
		json.NewEncoder(h).Encode(elem)
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Get retrieves a cached Search result for refSet, if present and still
// valid for the current generation and TTL.
func (c *QueryCache) Get(refSet domain.RawSet) (domain.SearchResult, bool) {
	c.mu.RLock()
	key := cacheKey(refSet)
	entry, exists := c.entries[key]
	currentGen := c.gen
	c.mu.RUnlock()

	if !exists {
		return domain.SearchResult{}, false
	}
	if time.Since(entry.timestamp) > c.ttl || entry.gen != currentGen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return domain.SearchResult{}, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()
	return entry.result, true
}

// Put stores a Search result under the current generation.
func (c *QueryCache) Put(refSet domain.RawSet, result domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(refSet)
	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{result: result, timestamp: time.Now(), gen: c.gen}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = &cacheEntry{result: result, timestamp: time.Now(), gen: c.gen}
	c.order = append(c.order, key)
}

// Invalidate discards every cached entry by advancing the generation
// counter; call after any mutator changes the engine's configuration.
func (c *QueryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
	c.gen++
}

// Size returns the current number of cached entries.
func (c *QueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
