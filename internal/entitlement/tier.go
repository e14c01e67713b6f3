// Package entitlement holds the pure subscription-tier rules: lazy expiry
// normalization, tier updates, premium gating, and the generation quota.
// Nothing here touches storage; callers persist what Evaluate asks them to.
package entitlement

import "strings"

// Tier is a named subscription level.
type Tier string

// Known tiers.
const (
	TierFree         Tier = "free"
	TierBasic        Tier = "basic"
	TierProfessional Tier = "professional"
	TierPremium      Tier = "premium"
	TierTrial        Tier = "trial"
)

// Tiers lists every known tier in display order.
var Tiers = []Tier{TierFree, TierTrial, TierBasic, TierProfessional, TierPremium}

// ParseTier normalizes a tier label. The second result is false for unknown labels.
func ParseTier(raw string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TierFree, TierBasic, TierProfessional, TierPremium, TierTrial:
		return t, true
	default:
		return "", false
	}
}

// IsPaid reports whether the tier carries an expiry.
func (t Tier) IsPaid() bool {
	switch t {
	case TierBasic, TierProfessional, TierPremium, TierTrial:
		return true
	default:
		return false
	}
}

func (t Tier) String() string { return string(t) }
