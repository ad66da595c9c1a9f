// Package ratelimit implements the per-client abuse control applied to
// ingestion requests. It is a fixed-window, memory-resident counter:
// approximate across restarts and replicas, which is acceptable for a
// cost-control measure that is not a security boundary.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultLimit is the admitted request count per window per client.
	DefaultLimit = 100
	// DefaultWindow is the counting window duration.
	DefaultWindow = 60 * time.Second
)

type entry struct {
	count int
	reset time.Time
}

// Limiter tracks request volume per client key. It is safe for
// concurrent use; the read-check-increment per key happens under one
// lock so concurrent requests for the same key cannot undercount.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
}

// New creates a limiter admitting limit requests per window per key.
// Non-positive arguments fall back to the defaults.
func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Limited records one request for key and reports whether it exceeds the
// window's budget. The first request of a fresh window is always admitted
// and resets the count.
func (l *Limiter) Limited(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.reset) {
		l.entries[key] = &entry{count: 1, reset: now.Add(l.window)}
		return false
	}
	e.count++
	return e.count > l.limit
}

// Sweep drops entries whose window has elapsed so the table does not
// grow with every client ever seen. Returns the number removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, e := range l.entries {
		if now.After(e.reset) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked client keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
