// Package cache provides a TTL byte cache for fetched documents, used
// to avoid refetching a URL repeatedly within one run burst.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/opportunities-radar/radar/internal/fingerprint"
)

// Cache is the minimal contract the fetcher needs.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
}

// Key derives a stable cache key from a source URL.
func Key(url string) string {
	return "radar:v1:" + fingerprint.Hash(url)
}

// Memory is an in-process TTL cache backed by go-cache.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL and
// expiry cleanup interval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value from the cache.
func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value in the cache with the given TTL.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	m.cache.Set(key, value, ttl)
}

// Flush drops all cached entries.
func (m *Memory) Flush() {
	m.cache.Flush()
}
