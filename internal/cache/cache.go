// Package cache provides the in-memory, time-bounded, read-through cache
// shared by all source adapters. Entries live for the configured TTL and are
// overwritten on refetch. There is no eviction beyond expiry: acceptable for
// short-lived processes with low key cardinality.
package cache

import (
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/model"
)

// DefaultTTL is how long a cached result set stays fresh.
const DefaultTTL = time.Hour

// Key identifies one cached search: source plus the exact search parameters.
type Key struct {
	Source   model.Source
	Query    string
	Location string
	Limit    int
}

type entry struct {
	listings []model.JobListing
	storedAt time.Time
}

// Cache is safe for concurrent use by multiple searches. Distinct keys never
// block each other beyond the map lock.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	ttl     time.Duration
	now     func() time.Time // overridable for tests
}

// New creates a cache with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[Key]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached listings for key if stored within the TTL. The
// returned slice is a copy: later pipeline stages may annotate listings
// without touching cached state.
func (c *Cache) Get(key Key) ([]model.JobListing, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}

	out := make([]model.JobListing, len(e.listings))
	copy(out, e.listings)
	return out, true
}

// Set stores listings under key with the current timestamp, overwriting any
// prior entry. Empty result sets are stored too, so a source that genuinely
// returned nothing is not refetched until the TTL elapses.
func (c *Cache) Set(key Key, listings []model.JobListing) {
	stored := make([]model.JobListing, len(listings))
	copy(stored, listings)

	c.mu.Lock()
	c.entries[key] = entry{listings: stored, storedAt: c.now()}
	c.mu.Unlock()
}

// Len reports the number of entries, fresh or expired.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
