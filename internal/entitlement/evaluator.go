package entitlement

import (
	"errors"
	"time"
)

// DefaultDurationDays applies when an update omits the duration.
const DefaultDurationDays = 30

var (
	// ErrInvalidTier is returned for tier labels outside the known set.
	ErrInvalidTier = errors.New("invalid subscription tier")
	// ErrInvalidDuration is returned for negative durations.
	ErrInvalidDuration = errors.New("invalid subscription duration")
)

// State is a snapshot of a user's stored tier.
type State struct {
	Tier      string
	ExpiresAt *time.Time
}

// Result is the effective entitlement reported to callers.
type Result struct {
	Tier      Tier
	Active    bool
	ExpiresAt *time.Time
}

// Evaluate computes the effective entitlement at now.
// needsPersist is true when the stored state must be rewritten to free/nil.
func Evaluate(state State, now time.Time) (Result, bool) {
	tier, known := ParseTier(state.Tier)
	if known && tier == TierFree {
		return Result{Tier: TierFree, Active: true}, state.ExpiresAt != nil
	}
	if known && state.ExpiresAt != nil && state.ExpiresAt.After(now) {
		expires := *state.ExpiresAt
		return Result{Tier: tier, Active: true, ExpiresAt: &expires}, false
	}
	return Result{Tier: TierFree, Active: true}, true
}

// Plan computes the state written by a tier update. durationDays of 0 means
// DefaultDurationDays. The previous state is ignored: updates overwrite.
func Plan(rawTier string, durationDays int, now time.Time) (Result, error) {
	tier, ok := ParseTier(rawTier)
	if !ok {
		return Result{}, ErrInvalidTier
	}
	if durationDays < 0 {
		return Result{}, ErrInvalidDuration
	}
	if durationDays == 0 {
		durationDays = DefaultDurationDays
	}
	if !tier.IsPaid() {
		return Result{Tier: TierFree, Active: true}, nil
	}
	expires := now.Add(time.Duration(durationDays) * 24 * time.Hour)
	return Result{Tier: tier, Active: true, ExpiresAt: &expires}, nil
}

// HasPremiumFeature gates premium-only endpoints. It is narrower than
// Evaluate's Active flag and is checked separately at each gated endpoint.
func HasPremiumFeature(state State, now time.Time) bool {
	tier, ok := ParseTier(state.Tier)
	if !ok || tier != TierPremium {
		return false
	}
	return state.ExpiresAt != nil && state.ExpiresAt.After(now)
}

// CanGenerate reports whether another generation is allowed.
// The counter is a lifetime total; nothing resets it periodically.
func CanGenerate(isAdmin bool, usageCount, usageQuota int) bool {
	return isAdmin || usageCount < usageQuota
}

// RequestsLeft returns the remaining quota, or -1 for unlimited.
func RequestsLeft(isAdmin bool, usageCount, usageQuota int) int {
	if isAdmin {
		return -1
	}
	left := usageQuota - usageCount
	if left < 0 {
		return 0
	}
	return left
}
