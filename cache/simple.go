// Package cache implements the two answer caches a Resolver can be
// configured with: Simple, a flat expiry-based cache, and LRU, a bounded
// cache with a recency list. Both are safe for concurrent use.
package cache

import (
	"sync"
	"time"

	"github.com/ferrodns/resolver/answer"
	"github.com/ferrodns/resolver/dnsname"
)

// DefaultCleaningInterval is how often Simple sweeps expired entries.
const DefaultCleaningInterval = 300 * time.Second

// Simple is a thread-safe, expiry-based answer cache with no size bound.
// Grounded on the teacher's map+mutex cache, generalized from a single
// LRU-bounded map into the plain "simple cache" spec.md §4.A describes
// separately from the bounded LRU of §4.B.
type Simple struct {
	mu               sync.Mutex
	entries          map[dnsname.CacheKey]answer.Answer
	cleaningInterval time.Duration
	nextCleaning     time.Time

	now func() time.Time // overridable for tests
}

// NewSimple returns an empty Simple cache with the default cleaning
// interval.
func NewSimple() *Simple {
	return &Simple{
		entries:          make(map[dnsname.CacheKey]answer.Answer),
		cleaningInterval: DefaultCleaningInterval,
		now:              time.Now,
	}
}

// SetCleaningInterval overrides the default 300s sweep interval.
func (c *Simple) SetCleaningInterval(d time.Duration) {
	c.mu.Lock()
	c.cleaningInterval = d
	c.mu.Unlock()
}

// Get returns the cached answer for key, or (zero, false) if absent or
// stale.
func (c *Simple) Get(key dnsname.CacheKey) (answer.Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.maybeClean(now)

	a, ok := c.entries[key]
	if !ok {
		return answer.Answer{}, false
	}
	if a.Expired(now) {
		return answer.Answer{}, false
	}
	return a, true
}

// Put stores a under key, overwriting any prior entry.
func (c *Simple) Put(key dnsname.CacheKey, a answer.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maybeClean(c.now())
	c.entries[key] = a
}

// Flush removes the entry for key. With no key given, flush clears the
// entire cache.
func (c *Simple) Flush(key *dnsname.CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key == nil {
		c.entries = make(map[dnsname.CacheKey]answer.Answer)
		return
	}
	delete(c.entries, *key)
}

// maybeClean evicts all stale entries if the cleaning interval has elapsed.
// Caller must hold c.mu.
func (c *Simple) maybeClean(now time.Time) {
	if c.nextCleaning.IsZero() {
		c.nextCleaning = now.Add(c.cleaningInterval)
		return
	}
	if now.Before(c.nextCleaning) {
		return
	}

	for k, a := range c.entries {
		if a.Expired(now) {
			delete(c.entries, k)
		}
	}
	c.nextCleaning = now.Add(c.cleaningInterval)
}
