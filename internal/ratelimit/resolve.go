package ratelimit

import (
	"strings"
	"time"

	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/models"
)

// ResolveLimit picks the per-second limit for an authenticated user. Admins are
// not limited. Active premium subscribers get PremiumLimit when it is set.
func ResolveLimit(cfg SettingsConfig, user *models.User, now time.Time) Decision {
	if user == nil || user.ID == 0 || user.IsAdmin {
		return Decision{}
	}
	limit := cfg.Limit
	state := entitlement.State{Tier: user.Tier, ExpiresAt: user.TierExpiresAt}
	if cfg.PremiumLimit > 0 && entitlement.HasPremiumFeature(state, now) {
		limit = cfg.PremiumLimit
	}
	if limit <= 0 {
		return Decision{}
	}
	return Decision{Limit: limit, Scope: ScopeUser, UserID: user.ID}
}

// ResolveAddressLimit limits anonymous requests by client address.
func ResolveAddressLimit(cfg SettingsConfig, address string) Decision {
	address = strings.TrimSpace(address)
	if cfg.Limit <= 0 || address == "" {
		return Decision{}
	}
	return Decision{Limit: cfg.Limit, Scope: ScopeAddress, Address: address}
}
