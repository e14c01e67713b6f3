package ratelimit

import (
	"sync"
	"time"
)

// breaker keeps Redis out of the request path for a cool-down period after a
// failure.
type breaker struct {
	mu       sync.Mutex
	cooldown time.Duration
	openTill time.Time
}

func newBreaker(cooldown time.Duration) *breaker {
	return &breaker{cooldown: cooldown}
}

// open reports whether calls should skip Redis at now.
func (b *breaker) open(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.openTill.IsZero() && now.Before(b.openTill)
}

// trip opens the breaker. It returns false when it was already open, so the
// caller logs only the first failure of an outage.
func (b *breaker) trip(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.openTill.IsZero() && now.Before(b.openTill) {
		return false
	}
	b.openTill = now.Add(b.cooldown)
	return true
}
