package services

import (
	"sync"
	"time"
)

// signedURLEntry holds a cached presigned URL with its absolute expiry.
type signedURLEntry struct {
	url    string
	expiry time.Time
}

// signedURLCache is an in-memory cache of presigned URLs keyed by object
// path. Entries are reused until shortly before expiry so concurrent page
// renders do not re-sign the same thumbnails. Writes race last-writer-wins,
// which is harmless since every racing URL is valid.
type signedURLCache struct {
	entries map[string]signedURLEntry
	mu      sync.RWMutex
	margin  time.Duration
}

func newSignedURLCache(margin time.Duration) *signedURLCache {
	return &signedURLCache{
		entries: make(map[string]signedURLEntry),
		margin:  margin,
	}
}

// Get returns the cached URL for a path, or false when absent or within the
// refresh margin of expiry.
func (c *signedURLCache) Get(path string, now time.Time) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[path]
	if !ok || now.After(entry.expiry.Add(-c.margin)) {
		return "", false
	}
	return entry.url, true
}

// Set stores a freshly signed URL and opportunistically drops any entries
// that already expired, keeping the map bounded in a long-lived process.
func (c *signedURLCache) Set(path, url string, expiry, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
		}
	}
	c.entries[path] = signedURLEntry{url: url, expiry: expiry}
}
