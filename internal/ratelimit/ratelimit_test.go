package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Unix(1_700_000_000, 0)
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "u:1", 2, now)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, _ := limiter.Allow(ctx, "u:1", 2, now)
	assert.True(t, second.Allowed)
	third, _ := limiter.Allow(ctx, "u:1", 2, now)
	assert.False(t, third.Allowed)

	other, _ := limiter.Allow(ctx, "u:2", 2, now)
	assert.True(t, other.Allowed, "keys are independent")

	next, _ := limiter.Allow(ctx, "u:1", 2, now.Add(time.Second))
	assert.True(t, next.Allowed, "a new window resets the counter")
}

func TestMemoryLimiter_SweepsStaleWindows(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()
	old := time.Unix(1_700_000_000, 0)

	for i := 0; i < 10; i++ {
		_, _ = limiter.Allow(ctx, fmt.Sprintf("ip:10.0.0.%d", i), 5, old)
	}
	require.Equal(t, 10, limiter.Len())

	later := old.Add(time.Minute)
	for i := 0; i < sweepEvery; i++ {
		_, _ = limiter.Allow(ctx, "u:1", sweepEvery+1, later)
	}
	assert.Equal(t, 1, limiter.Len())
}

func TestRedisLimiter_UsesPrefixedKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLimiter(client, "cf:rl")
	now := time.Unix(1_700_000_000, 0)
	ctx := context.Background()

	res, err := limiter.Allow(ctx, "u:7", 1, now)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.True(t, mr.Exists("cf:rl:u:7:1700000000"))
	assert.Equal(t, redisKeyTTL, mr.TTL("cf:rl:u:7:1700000000"))

	res, err = limiter.Allow(ctx, "u:7", 1, now)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestManager_RedisThenMemoryFallback(t *testing.T) {
	mr, errRun := miniredis.Run()
	require.NoError(t, errRun)
	now := time.Unix(1_700_000_000, 0)
	settings := SettingsConfig{Limit: 1, RedisEnabled: true, RedisAddr: mr.Addr(), RedisPrefix: "test"}
	manager := NewManager(func() SettingsConfig { return settings }, func() time.Time { return now }, nil)
	t.Cleanup(func() { _ = manager.Close() })
	ctx := context.Background()

	res, err := manager.Allow(ctx, "u:1", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.True(t, mr.Exists("test:u:1:1700000000"))

	mr.Close()
	res, err = manager.Allow(ctx, "u:2", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "memory backend answers while redis is down")
	res, _ = manager.Allow(ctx, "u:2", 1)
	assert.False(t, res.Allowed)
}

func TestManager_DisabledLimit(t *testing.T) {
	manager := NewManager(nil, nil, nil)
	res, err := manager.Check(context.Background(), Decision{})
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, SettingsConfig{}, manager.Settings())
}

func TestResolveLimit_PerTier(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	cfg := SettingsFromConfig(config.RateLimitConfig{Limit: 2, PremiumLimit: 10, RedisDB: -3})
	assert.Equal(t, 0, cfg.RedisDB)

	free := &models.User{ID: 1, Tier: "free"}
	premium := &models.User{ID: 2, Tier: "premium", TierExpiresAt: &future}
	lapsed := &models.User{ID: 3, Tier: "premium"}
	admin := &models.User{ID: 4, Tier: "free", IsAdmin: true}

	assert.Equal(t, Decision{Limit: 2, Scope: ScopeUser, UserID: 1}, ResolveLimit(cfg, free, now))
	assert.Equal(t, 10, ResolveLimit(cfg, premium, now).Limit)
	assert.Equal(t, 2, ResolveLimit(cfg, lapsed, now).Limit)
	assert.Equal(t, Decision{}, ResolveLimit(cfg, admin, now))
	assert.Equal(t, Decision{}, ResolveLimit(SettingsConfig{}, free, now))
}

func TestKeyForDecision(t *testing.T) {
	assert.Equal(t, "u:9", KeyForDecision(Decision{Limit: 1, Scope: ScopeUser, UserID: 9}))
	assert.Equal(t, "ip:10.0.0.1", KeyForDecision(ResolveAddressLimit(SettingsConfig{Limit: 3}, " 10.0.0.1 ")))
	assert.Equal(t, "", KeyForDecision(Decision{Limit: 0, Scope: ScopeUser, UserID: 9}))
	assert.Equal(t, "", KeyForDecision(Decision{Limit: 1, Scope: ScopeUser}))
	assert.Equal(t, "", KeyForDecision(ResolveAddressLimit(SettingsConfig{}, "10.0.0.1")))
}

func TestBreaker_CoolsDown(t *testing.T) {
	b := newBreaker(30 * time.Second)
	now := time.Unix(1_700_000_000, 0)

	assert.False(t, b.open(now))
	assert.True(t, b.trip(now))
	assert.False(t, b.trip(now.Add(time.Second)), "already open")
	assert.True(t, b.open(now.Add(29*time.Second)))
	assert.False(t, b.open(now.Add(30*time.Second)))
	assert.True(t, b.trip(now.Add(31*time.Second)))
}

func TestManager_RedisWithoutAddressUsesMemory(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	settings := SettingsConfig{Limit: 1, RedisEnabled: true}
	manager := NewManager(func() SettingsConfig { return settings }, func() time.Time { return now }, nil)

	res, err := manager.Allow(context.Background(), "ip:1.2.3.4", 1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	res, _ = manager.Allow(context.Background(), "ip:1.2.3.4", 1)
	assert.False(t, res.Allowed)
	assert.NoError(t, manager.Close())
}
