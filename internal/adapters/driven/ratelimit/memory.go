// Package ratelimit provides the in-memory per-client admission gate.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/openedu-labs/deptchat-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RateLimiter = (*MemoryLimiter)(nil)

// entry is one client's window state
type entry struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter implements a fixed-window-with-reset admission policy.
// Each client gets a counter and a window start; the counter resets when
// the window elapses. A client can therefore burst up to twice the limit
// across a window boundary. Known, accepted imprecision.
//
// Check-and-increment happens under a single mutex hold so concurrent
// requests from the same client cannot over-admit.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*entry

	limit  int
	window time.Duration

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// Option configures a MemoryLimiter
type Option func(*MemoryLimiter)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter creates a limiter admitting `limit` requests per client
// per `window`. A background sweep evicts clients whose window has long
// expired, so the table does not grow without bound under many distinct
// clients.
func NewMemoryLimiter(limit int, window time.Duration, opts ...Option) *MemoryLimiter {
	l := &MemoryLimiter{
		clients: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	go l.sweep()
	return l
}

// Allow reports whether the client may proceed. Rejections do not mutate
// the counter. The error return exists only to satisfy the port; the
// in-memory limiter never fails.
func (l *MemoryLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.clients[clientID]
	if !ok || now.Sub(e.windowStart) > l.window {
		l.clients[clientID] = &entry{count: 1, windowStart: now}
		return true, nil
	}

	if e.count >= l.limit {
		return false, nil
	}

	e.count++
	return true, nil
}

// Stop halts the background sweep. Safe to call more than once.
func (l *MemoryLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// sweep periodically drops clients whose window expired more than one full
// window ago. Such entries would be reset on their next request anyway.
func (l *MemoryLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.evictExpired()
		}
	}
}

func (l *MemoryLimiter) evictExpired() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, e := range l.clients {
		if now.Sub(e.windowStart) > 2*l.window {
			delete(l.clients, id)
		}
	}
}

// size returns the number of tracked clients, for tests
func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
