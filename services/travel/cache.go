package travel

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// QueryCache is a bounded, TTL-aware store for resolved provider results,
// keyed per session. All operations take a single coarse lock; critical
// sections are plain map and slice work so lock hold time stays short.
// Every entry carries its own absolute expiry, whether it was stored with
// the default TTL or a custom one.
type QueryCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	order      []string // keys in insertion order, oldest first
	maxEntries int
	defaultTTL time.Duration
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewQueryCache returns a cache with the given default TTL and capacity.
func NewQueryCache(defaultTTL time.Duration, maxEntries int) *QueryCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &QueryCache{
		entries:    make(map[string]cacheEntry),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
	}
}

// cacheKey builds the deterministic composite key. Parameters are sorted by
// name so insertion order never changes the key.
func cacheKey(sessionID, queryType string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, params[name]))
	}
	return sessionID + ":" + queryType + ":" + strings.Join(pairs, "|")
}

// Get returns the stored value if present and unexpired.
func (c *QueryCache) Get(sessionID, queryType string, params map[string]string) (any, bool) {
	key := cacheKey(sessionID, queryType, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores a value under the composite key with the default TTL.
func (c *QueryCache) Set(sessionID, queryType string, params map[string]string, value any) {
	c.SetWithTTL(sessionID, queryType, params, value, c.defaultTTL)
}

// SetWithTTL stores a value with an explicit TTL. If the cache is full the
// oldest entries are evicted regardless of their remaining TTL.
func (c *QueryCache) SetWithTTL(sessionID, queryType string, params map[string]string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	key := cacheKey(sessionID, queryType, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		// Get and ClearSession drop entries without touching order, so a
		// re-inserted key may still hold a stale slot near the front. Drop
		// it, or the next eviction would remove this fresh entry instead of
		// the true oldest.
		for i, stale := range c.order {
			if stale == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
			oldest := c.order[0]
			c.order = c.order[1:]
			// order can hold keys already removed by Get or ClearSession.
			if _, ok := c.entries[oldest]; ok {
				delete(c.entries, oldest)
			}
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

// ClearSession removes all entries belonging to one session.
func (c *QueryCache) ClearSession(sessionID string) {
	prefix := sessionID + ":"

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// ClearAll empties the cache.
func (c *QueryCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.order = nil
}

// Len reports the number of live entries, expired or not yet collected.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
