package dictionary

import (
	"math"
	"slices"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// resultCache keeps recent closest-word answers in a patricia trie keyed by
// threshold and folded query. A nil *resultCache is a disabled cache.
type resultCache struct {
	entries     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

func newResultCache(maxEntries int) *resultCache {
	if maxEntries <= 0 {
		return nil
	}
	return &resultCache{
		entries:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

func cacheKey(threshold int, folded string) string {
	return strconv.Itoa(threshold) + ":" + folded
}

// Get returns a copy of the cached words for key.
func (c *resultCache) Get(key string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.entries.Get(patricia.Prefix(key))
	if item == nil {
		c.misses++
		return nil, false
	}
	c.hits++
	c.markAccessed(key)
	return slices.Clone(item.([]string)), true
}

// Put stores words under key, evicting the least recently used entry when full.
func (c *resultCache) Put(key string, words []string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.accessTime[key]; !exists && len(c.accessTime) >= c.maxEntries {
		c.evictLRU()
	}
	c.entries.Set(patricia.Prefix(key), slices.Clone(words))
	c.markAccessed(key)
}

// Reset drops every entry. Any mutation of the dictionary calls it.
func (c *resultCache) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.accessTime) > 0 {
		log.Debugf("Dropping %d cached results", len(c.accessTime))
	}
	c.entries = patricia.NewTrie()
	clear(c.accessTime)
}

func (c *resultCache) Stats() map[string]int {
	if c == nil {
		return map[string]int{"cacheEntries": 0, "maxCacheEntries": 0}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]int{
		"cacheEntries":    len(c.accessTime),
		"maxCacheEntries": c.maxEntries,
		"cacheHits":       int(c.hits),
		"cacheMisses":     int(c.misses),
	}
}

func (c *resultCache) markAccessed(key string) {
	c.accessCount++
	c.accessTime[key] = c.accessCount
}

func (c *resultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, accessTime := range c.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestKey != "" {
		c.entries.Delete(patricia.Prefix(oldestKey))
		delete(c.accessTime, oldestKey)
		log.Debugf("Evicted '%s' from result cache", oldestKey)
	}
}
