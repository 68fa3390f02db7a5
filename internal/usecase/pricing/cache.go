package pricing

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCacheTTL is how long a cached price stays fresh.
const DefaultCacheTTL = 300 * time.Second

// cacheEntry is an ephemeral in-memory price record. Entries are owned
// exclusively by the cache, superseded by any newer store for the same
// symbol, and never persisted.
type cacheEntry struct {
	price       decimal.Decimal
	retrievedAt time.Time
}

// Cache is an in-memory price cache with a fixed time-to-live.
// It supports concurrent reads and writes from multiple in-flight
// resolutions; last write wins per symbol.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewCache creates a price cache. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Lookup returns the cached price for a symbol and whether it is fresh.
// An entry older than the TTL is a miss: stale entries are ignored, not
// evicted, since any later Store overwrites them anyway.
func (c *Cache) Lookup(symbol string) (decimal.Decimal, bool) {
	c.mu.RLock()
	entry, ok := c.entries[symbol]
	c.mu.RUnlock()

	if !ok {
		return decimal.Decimal{}, false
	}
	if time.Since(entry.retrievedAt) >= c.ttl {
		return decimal.Decimal{}, false
	}
	return entry.price, true
}

// Store records a price for a symbol, overwriting any prior entry.
// retrievedAt is supplied by the caller; freshness on lookup is decided
// by clock recency, not insertion order, so concurrent stores for the
// same symbol need no ordering guarantee.
func (c *Cache) Store(symbol string, price decimal.Decimal, retrievedAt time.Time) {
	c.mu.Lock()
	c.entries[symbol] = cacheEntry{price: price, retrievedAt: retrievedAt}
	c.mu.Unlock()
}

// Reset empties the cache. Exposed for forced refreshes and tests.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of entries currently held, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
