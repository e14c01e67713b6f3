package entitlement

import "time"

// Features summarizes what the current entitlement unlocks.
type Features struct {
	ContentGeneration bool `json:"content_generation"`
	TrendAnalysis     bool `json:"trend_analysis"`
	RequestsLeft      int  `json:"requests_left"`
	Unlimited         bool `json:"unlimited"`
}

// FeaturesFor derives the feature set for a user snapshot.
func FeaturesFor(state State, isAdmin bool, usageCount, usageQuota int, now time.Time) Features {
	return Features{
		ContentGeneration: CanGenerate(isAdmin, usageCount, usageQuota),
		TrendAnalysis:     HasPremiumFeature(state, now),
		RequestsLeft:      RequestsLeft(isAdmin, usageCount, usageQuota),
		Unlimited:         isAdmin,
	}
}

var listPrices = map[Tier]float64{
	TierFree:         0,
	TierTrial:        1,
	TierBasic:        15,
	TierProfessional: 30,
	TierPremium:      50,
}

// ListPrice returns the monthly list price of a tier in USD.
func ListPrice(tier Tier) float64 {
	return listPrices[tier]
}
