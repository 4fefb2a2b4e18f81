package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetRespectsMaxAge(t *testing.T) {
	c := newFetchCacheWithInterval(time.Hour)
	defer c.close()

	base := time.Now()
	c.now = func() time.Time { return base }
	c.set("k", []byte("v"), time.Minute)

	got, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok = c.get("k")
	assert.False(t, ok)

	// Still within the stale window, so the fallback path can use it.
	stale, ok := c.getStale("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), stale)
}

func TestCacheSweepDropsAgedEntries(t *testing.T) {
	c := newFetchCacheWithInterval(10 * time.Millisecond)
	defer c.close()

	// A slug-index entry still inside its 10x stale window: the sweeper
	// must drop it anyway once it is over an hour old.
	base := time.Now()
	c.set("k", []byte("v"), slugsMaxAge)

	// The sweeper reads the clock under the lock, so swap it under the lock.
	c.mu.Lock()
	c.now = func() time.Time { return base.Add(maxEntryAge + time.Minute) }
	c.mu.Unlock()

	assert.Eventually(t, func() bool {
		_, ok := c.getStale("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCacheSweepKeepsEntriesUnderCeiling(t *testing.T) {
	c := newFetchCacheWithInterval(time.Hour)
	defer c.close()

	base := time.Now()
	c.now = func() time.Time { return base }
	c.set("k", []byte("v"), time.Minute)

	c.now = func() time.Time { return base.Add(5 * time.Minute) }
	c.sweep()

	// Expired for get but within the hour, so the stale fallback keeps it.
	_, ok := c.get("k")
	assert.False(t, ok)
	stale, ok := c.getStale("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), stale)
}

func TestCacheClear(t *testing.T) {
	c := newFetchCacheWithInterval(time.Hour)
	defer c.close()

	c.set("a", []byte("1"), time.Minute)
	c.set("b", []byte("2"), time.Minute)
	c.clear()

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.getStale("b")
	assert.False(t, ok)
}
