package cache

import (
	"sync"
	"time"

	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/metrics"
)

// DefaultTTL is how long an entry is served before it is considered stale
const DefaultTTL = 120 * time.Second

// Clock returns the current wall-clock time
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a process-wide key/value store with a fixed time-to-live.
// Stale entries are ignored on read but never evicted; Clear wipes everything.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock
	metrics *metrics.Metrics
}

// Option configures a Cache
type Option func(*Cache)

// WithClock overrides the clock used for stamping and expiry
func WithClock(c Clock) Option {
	return func(ca *Cache) { ca.clock = c }
}

// WithMetrics attaches Prometheus counters
func WithMetrics(m *metrics.Metrics) Option {
	return func(ca *Cache) { ca.metrics = m }
}

// New creates a cache with the given ttl (DefaultTTL when ttl <= 0)
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   SystemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key. A false allowCache is a manual
// refresh and always reports a miss.
func (c *Cache) Get(key string, allowCache bool) (any, bool) {
	if !allowCache {
		logger.Info("cache bypassed (manual refresh)", logger.Fields{"key": key})
		c.metrics.CacheLookup("bypass")
		return nil, false
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()

	if !ok {
		c.metrics.CacheLookup("miss")
		return nil, false
	}

	if c.clock.Now().Sub(e.storedAt) >= c.ttl {
		c.metrics.CacheLookup("stale")
		return nil, false
	}

	logger.Debug("using cached data", logger.Fields{"key": key})
	c.metrics.CacheLookup("hit")
	return e.value, true
}

// Set stores value under key, overwriting any previous entry
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.clock.Now()}
	c.mu.Unlock()

	logger.Debug("cached data", logger.Fields{"key": key})
}

// Clear removes every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.metrics.CacheCleared()
	logger.Info("cache cleared", nil)
}

// Len reports the number of stored entries, stale ones included
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// TTL returns the configured time-to-live
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
