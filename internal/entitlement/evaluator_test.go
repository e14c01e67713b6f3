package entitlement

import (
	"errors"
	"testing"
	"time"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestEvaluate_Free(t *testing.T) {
	now := time.Now()
	res, persist := Evaluate(State{Tier: "free"}, now)
	if res.Tier != TierFree || !res.Active || res.ExpiresAt != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if persist {
		t.Fatalf("free user must not need persistence")
	}
}

func TestEvaluate_PaidFutureExpiry(t *testing.T) {
	now := time.Now()
	expires := now.Add(48 * time.Hour)
	res, persist := Evaluate(State{Tier: "professional", ExpiresAt: &expires}, now)
	if res.Tier != TierProfessional || !res.Active {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.ExpiresAt == nil || !res.ExpiresAt.Equal(expires) {
		t.Fatalf("expected expiry to be unchanged")
	}
	if persist {
		t.Fatalf("active paid tier must not need persistence")
	}
}

func TestEvaluate_PaidPastExpiryNormalizes(t *testing.T) {
	now := time.Now()
	res, persist := Evaluate(State{Tier: "premium", ExpiresAt: ptrTime(now.Add(-time.Minute))}, now)
	if res.Tier != TierFree || !res.Active || res.ExpiresAt != nil {
		t.Fatalf("expected normalization to free, got %+v", res)
	}
	if !persist {
		t.Fatalf("expected persistence to be requested")
	}

	again, persistAgain := Evaluate(State{Tier: string(res.Tier), ExpiresAt: res.ExpiresAt}, now)
	if again != res || persistAgain {
		t.Fatalf("second evaluation must be a no-op, got %+v persist=%v", again, persistAgain)
	}
}

func TestEvaluate_PaidNilExpiryNormalizes(t *testing.T) {
	res, persist := Evaluate(State{Tier: "basic"}, time.Now())
	if res.Tier != TierFree || !persist {
		t.Fatalf("expected basic/nil to normalize, got %+v persist=%v", res, persist)
	}
}

func TestEvaluate_ExpiryEqualToNowIsExpired(t *testing.T) {
	now := time.Now()
	res, persist := Evaluate(State{Tier: "trial", ExpiresAt: ptrTime(now)}, now)
	if res.Tier != TierFree || !persist {
		t.Fatalf("expiry == now must count as expired, got %+v", res)
	}
}

func TestEvaluate_UnknownTierNormalizes(t *testing.T) {
	now := time.Now()
	res, persist := Evaluate(State{Tier: "gold", ExpiresAt: ptrTime(now.Add(time.Hour))}, now)
	if res.Tier != TierFree || !persist {
		t.Fatalf("unknown tier must normalize, got %+v persist=%v", res, persist)
	}
}

func TestPlan_PaidSetsExpiry(t *testing.T) {
	now := time.Now()
	res, err := Plan("premium", 30, now)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.ExpiresAt == nil {
		t.Fatalf("expected expiry")
	}
	if want := now.Add(30 * 24 * time.Hour); !res.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %s, got %s", want, res.ExpiresAt)
	}

	evaluated, persist := Evaluate(State{Tier: string(res.Tier), ExpiresAt: res.ExpiresAt}, now)
	if !evaluated.Active || evaluated.Tier != TierPremium || persist {
		t.Fatalf("expected active premium after update, got %+v", evaluated)
	}
}

func TestPlan_DefaultDuration(t *testing.T) {
	now := time.Now()
	res, err := Plan("Basic", 0, now)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if want := now.Add(DefaultDurationDays * 24 * time.Hour); !res.ExpiresAt.Equal(want) {
		t.Fatalf("expected default duration expiry %s, got %s", want, res.ExpiresAt)
	}
}

func TestPlan_FreeClearsExpiry(t *testing.T) {
	res, err := Plan("free", 30, time.Now())
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.Tier != TierFree || res.ExpiresAt != nil {
		t.Fatalf("expected free with nil expiry, got %+v", res)
	}
}

func TestPlan_Rejections(t *testing.T) {
	if _, err := Plan("bogus_tier", 30, time.Now()); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
	if _, err := Plan("premium", -1, time.Now()); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestHasPremiumFeature(t *testing.T) {
	now := time.Now()
	future := ptrTime(now.Add(time.Hour))
	past := ptrTime(now.Add(-time.Hour))

	cases := []struct {
		name  string
		state State
		want  bool
	}{
		{"premium active", State{Tier: "premium", ExpiresAt: future}, true},
		{"premium expired", State{Tier: "premium", ExpiresAt: past}, false},
		{"premium without expiry", State{Tier: "premium"}, false},
		{"professional active", State{Tier: "professional", ExpiresAt: future}, false},
		{"free", State{Tier: "free"}, false},
	}
	for _, tc := range cases {
		if got := HasPremiumFeature(tc.state, now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCanGenerate(t *testing.T) {
	if CanGenerate(false, 5, 5) {
		t.Fatalf("user at quota must be denied")
	}
	if !CanGenerate(true, 5, 5) {
		t.Fatalf("admin at quota must be allowed")
	}
	if !CanGenerate(false, 4, 5) {
		t.Fatalf("user below quota must be allowed")
	}
}

func TestFeaturesFor(t *testing.T) {
	now := time.Now()
	f := FeaturesFor(State{Tier: "premium", ExpiresAt: ptrTime(now.Add(time.Hour))}, false, 2, 5, now)
	if !f.ContentGeneration || !f.TrendAnalysis || f.RequestsLeft != 3 || f.Unlimited {
		t.Fatalf("unexpected features %+v", f)
	}
	admin := FeaturesFor(State{Tier: "free"}, true, 10, 5, now)
	if !admin.ContentGeneration || admin.TrendAnalysis || admin.RequestsLeft != -1 || !admin.Unlimited {
		t.Fatalf("unexpected admin features %+v", admin)
	}
}

func TestListPrice(t *testing.T) {
	if ListPrice(TierPremium) != 50 || ListPrice(TierBasic) != 15 || ListPrice(TierFree) != 0 {
		t.Fatalf("unexpected list prices")
	}
}
