package feed

import (
	"context"
	"strings"
	"sync"
	"time"
)

const DefaultWindow = time.Minute

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per caller in fixed windows
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type windowCounter struct {
	windowStart time.Time
	count       int
}

// MemoryLimiter is a process-local fixed window limiter
type MemoryLimiter struct {
	mu         sync.Mutex
	limit      int
	window     time.Duration
	now        func() time.Time
	lastPruned time.Time
	counters   map[string]windowCounter
}

// NewMemoryLimiter allows limit requests per window. A limit of zero disables limiting.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		counters: make(map[string]windowCounter, 128),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	key = strings.TrimSpace(key)
	if l.limit <= 0 || key == "" {
		return Decision{Allowed: true, Remaining: l.limit}, nil
	}

	now := l.now().UTC()
	windowStart := now.Truncate(l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneStaleLocked(windowStart)

	counter := l.counters[key]
	if !counter.windowStart.Equal(windowStart) {
		counter = windowCounter{windowStart: windowStart}
	}
	if counter.count >= l.limit {
		l.counters[key] = counter
		return Decision{RetryAfter: windowStart.Add(l.window).Sub(now)}, nil
	}
	counter.count++
	l.counters[key] = counter
	return Decision{Allowed: true, Remaining: l.limit - counter.count}, nil
}

func (l *MemoryLimiter) pruneStaleLocked(currentWindowStart time.Time) {
	if !l.lastPruned.IsZero() && currentWindowStart.Sub(l.lastPruned) < l.window {
		return
	}
	cutoff := currentWindowStart.Add(-l.window)
	for key, counter := range l.counters {
		if counter.windowStart.Before(cutoff) {
			delete(l.counters, key)
		}
	}
	l.lastPruned = currentWindowStart
}
