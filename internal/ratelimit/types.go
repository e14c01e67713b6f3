package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// window is the fixed counting window shared by every limiter backend.
const window = time.Second

// windowStart returns the unix second that opens now's window and the time
// the window resets.
func windowStart(now time.Time) (int64, time.Time) {
	start := now.Truncate(window)
	return start.Unix(), start.Add(window).UTC()
}

// Limiter provides rate limit checks.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, now time.Time) (Result, error)
}

// Scope indicates which dimension the rate limit applies to.
type Scope int

// Supported scopes. ScopeNone means the request is not limited.
const (
	ScopeNone Scope = iota
	ScopeUser
	ScopeAddress
)

// Decision describes the resolved rate limit and scope.
type Decision struct {
	Limit   int
	Scope   Scope
	UserID  uint64
	Address string
}
