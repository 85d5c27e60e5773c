// Package ratelimit implements fixed-window request counting keyed by
// (client identifier, action). Fixed windows admit up to twice the limit
// across a window boundary; that burst is an accepted characteristic of the
// algorithm, not a bug.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned by Check when the window budget is spent.
var ErrRateLimited = errors.New("rate limited")

// Policy is the budget for one action.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Limiter decides whether an attempt is within budget. Implementations must
// serialize increments to the same key; an under-count would weaken
// brute-force protection.
type Limiter interface {
	Allow(ctx context.Context, identifier, action string, p Policy) (bool, error)
}

// Check is the error-shaped form of Allow: ErrRateLimited when the attempt
// is over budget, the backend error when the limiter itself failed.
func Check(ctx context.Context, l Limiter, identifier, action string, p Policy) error {
	allowed, err := l.Allow(ctx, identifier, action, p)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrRateLimited
	}
	return nil
}

type window struct {
	start time.Time
	count int
}

// MemoryLimiter keeps counters in process memory. State is ephemeral: a
// restart clears every window, and instances do not share counters.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter creates an empty in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*window), now: time.Now}
}

// WithClock overrides the time source, for tests.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

// Allow counts one attempt against the (identifier, action) window and
// reports whether it is within the policy limit. A fresh or elapsed window
// restarts the count at one.
func (l *MemoryLimiter) Allow(_ context.Context, identifier, action string, p Policy) (bool, error) {
	if p.Limit <= 0 || p.Window <= 0 {
		return true, nil
	}

	key := identifier + "|" + action
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= p.Window {
		l.windows[key] = &window{start: now, count: 1}
		return true, nil
	}

	w.count++
	return w.count <= p.Limit, nil
}
