// Package repository provides storage for geo lookup results.
package repository

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"homegate_search/internal/geo/transport"

	"golang.org/x/text/unicode/norm"
)

// Cache stores lookup hits keyed by CacheKey.
// Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]transport.LookupResult, bool, error)
	Set(ctx context.Context, key string, results []transport.LookupResult) error
}

// CacheKey builds the cache key for a lookup. Names are NFC-normalized so
// composed and decomposed spellings of "Zürich" share an entry.
func CacheKey(lang, name string, size int) string {
	return strings.ToLower(lang) + "|" + norm.NFC.String(name) + "|" + strconv.Itoa(size)
}

type memoryEntry struct {
	results   []transport.LookupResult
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]transport.LookupResult, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	return entry.results, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, results []transport.LookupResult) error {
	stored := append([]transport.LookupResult(nil), results...)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		results:   stored,
		expiresAt: c.now().Add(c.ttl),
	}

	// Opportunistic cleanup keeps the map from growing without bound.
	if len(c.entries) > 1000 {
		now := c.now()
		for k, v := range c.entries {
			if now.After(v.expiresAt) {
				delete(c.entries, k)
			}
		}
	}

	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
