package client

import (
	"sync"
	"time"
)

// staleFactor controls how long an expired entry may still be served when a
// refresh fails. An entry older than staleFactor times its max age is gone
// for good.
const staleFactor = 10

const defaultSweepInterval = time.Hour

// maxEntryAge is the absolute storage ceiling enforced by the sweeper.
const maxEntryAge = time.Hour

type cacheEntry struct {
	value   []byte
	fetched time.Time
	maxAge  time.Duration
}

// fetchCache is an in-memory response cache keyed by request URL. Entries are
// stored with the max age of the call that produced them, so listing, detail
// and slug responses can live side by side with different lifetimes.
type fetchCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

func newFetchCache() *fetchCache {
	return newFetchCacheWithInterval(defaultSweepInterval)
}

func newFetchCacheWithInterval(interval time.Duration) *fetchCache {
	c := &fetchCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go c.sweepLoop(interval)
	return c
}

// get returns a cached value that is still within its max age.
func (c *fetchCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetched) > entry.maxAge {
		return nil, false
	}
	return entry.value, true
}

// getStale returns an expired value that has not aged past the stale window.
// Used as a fallback when a refresh fails.
func (c *fetchCache) getStale(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetched) > entry.maxAge*staleFactor {
		return nil, false
	}
	return entry.value, true
}

func (c *fetchCache) set(key string, value []byte, maxAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, fetched: c.now(), maxAge: maxAge}
}

func (c *fetchCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *fetchCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// sweep drops every entry older than one hour, whatever its max age. The
// stale-factor window only governs reads; storage has a hard ceiling.
func (c *fetchCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.Sub(entry.fetched) > maxEntryAge {
			delete(c.entries, key)
		}
	}
}

func (c *fetchCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

func (c *fetchCache) close() {
	c.once.Do(func() { close(c.done) })
}
