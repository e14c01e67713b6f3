package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepEvery controls how many calls pass between removals of stale counters.
const sweepEvery = 1024

// MemoryLimiter counts requests per key in a fixed window held in process memory.
// Counters from past windows are dropped periodically so per-address keys do
// not accumulate.
type MemoryLimiter struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	calls    int
}

type windowCounter struct {
	start int64
	count int
}

// NewMemoryLimiter constructs a MemoryLimiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{counters: make(map[string]*windowCounter)}
}

// Allow consumes one request for key in the window containing now.
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, now time.Time) (Result, error) {
	if limit <= 0 || key == "" {
		return Result{Allowed: true}, nil
	}
	start, reset := windowStart(now)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweep(start)
	}

	counter, ok := l.counters[key]
	if !ok || counter.start != start {
		counter = &windowCounter{start: start}
		l.counters[key] = counter
	}
	if counter.count >= limit {
		return Result{Allowed: false, Reset: reset}, nil
	}
	counter.count++
	return Result{Allowed: true, Remaining: limit - counter.count, Reset: reset}, nil
}

// Len reports how many keys currently hold a counter.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}

// sweep removes counters that belong to windows before current. Callers hold mu.
func (l *MemoryLimiter) sweep(current int64) {
	for key, counter := range l.counters {
		if counter.start < current {
			delete(l.counters, key)
		}
	}
}
