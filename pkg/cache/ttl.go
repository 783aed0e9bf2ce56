// Package cache provides an in-memory TTL cache and deterministic cache keys.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pario-ai/ragchat/pkg/models"
)

const (
	// DefaultTTL is the general-purpose entry lifetime.
	DefaultTTL = 5 * time.Minute
	// AnswerTTL is the lifetime of cached question answers.
	AnswerTTL = 10 * time.Minute
	// SweepInterval is how often long-running hosts purge expired entries.
	SweepInterval = time.Minute
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a concurrency-safe map whose entries expire after a time-to-live.
// Expired entries are evicted lazily on Get or in bulk by CleanupExpired.
type TTL[V any] struct {
	mu     sync.Mutex
	data   map[string]entry[V]
	ttl    time.Duration
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a TTL cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewTTL creates a cache with the given default TTL. A non-positive ttl
// falls back to DefaultTTL.
func NewTTL[V any](ttl time.Duration, opts ...Option) *TTL[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTL[V]{
		data: make(map[string]entry[V]),
		ttl:  ttl,
		now:  o.now,
	}
}

// Get returns the value for key if present and not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.data, key)
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *TTL[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key, expiring after ttl.
func (c *TTL[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.data[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key and reports whether it was present.
func (c *TTL[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	delete(c.data, key)
	return ok
}

// Clear removes every entry.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	c.data = make(map[string]entry[V])
	c.mu.Unlock()
}

// CleanupExpired removes entries whose expiry is in the past and returns
// how many were removed.
func (c *TTL[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.data {
		if e.expiresAt.Before(now) {
			delete(c.data, k)
			removed++
		}
	}
	return removed
}

// Sweep calls CleanupExpired every interval until ctx is done. A
// non-positive interval uses the cache TTL.
func (c *TTL[V]) Sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = c.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CleanupExpired()
		}
	}
}

// Len returns the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Stats returns entry count and hit/miss counters.
func (c *TTL[V]) Stats() (models.CacheStats, error) {
	return models.CacheStats{
		Entries: int64(c.Len()),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}
