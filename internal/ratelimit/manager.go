package ratelimit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	redisCooldown    = 30 * time.Second
	redisPingTimeout = 2 * time.Second
)

// SettingsProvider supplies the latest settings snapshot.
type SettingsProvider func() SettingsConfig

// RedisClientFactory constructs a Redis client for the given options.
type RedisClientFactory func(options *redis.Options) *redis.Client

// redisTarget identifies one Redis connection; a change reconnects.
type redisTarget struct {
	addr     string
	password string
	db       int
	prefix   string
}

func targetFrom(cfg SettingsConfig) (redisTarget, error) {
	target := redisTarget{
		addr:     strings.TrimSpace(cfg.RedisAddr),
		password: cfg.RedisPassword,
		db:       cfg.RedisDB,
		prefix:   strings.TrimSpace(cfg.RedisPrefix),
	}
	if target.addr == "" {
		return redisTarget{}, errors.New("rate limit redis: missing address")
	}
	if target.db < 0 {
		target.db = 0
	}
	return target, nil
}

// Manager enforces limits with Redis when configured and healthy, and with the
// in-process limiter otherwise.
type Manager struct {
	settings  SettingsProvider
	now       func() time.Time
	newClient RedisClientFactory
	memory    Limiter
	breaker   *breaker

	mu     sync.Mutex
	redis  *RedisLimiter
	target redisTarget
}

// NewManager constructs a Manager with default dependencies when nil.
func NewManager(provider SettingsProvider, nowFn func() time.Time, newRedisClient RedisClientFactory) *Manager {
	if provider == nil {
		provider = func() SettingsConfig { return SettingsConfig{} }
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	if newRedisClient == nil {
		newRedisClient = redis.NewClient
	}
	return &Manager{
		settings:  provider,
		now:       nowFn,
		newClient: newRedisClient,
		memory:    NewMemoryLimiter(),
		breaker:   newBreaker(redisCooldown),
	}
}

// Settings returns the current settings snapshot.
func (m *Manager) Settings() SettingsConfig {
	if m == nil {
		return SettingsConfig{}
	}
	return m.settings()
}

// Check resolves the key for decision and enforces it.
func (m *Manager) Check(ctx context.Context, decision Decision) (Result, error) {
	return m.Allow(ctx, KeyForDecision(decision), decision.Limit)
}

// Allow consumes one request for key against limit.
func (m *Manager) Allow(ctx context.Context, key string, limit int) (Result, error) {
	if m == nil || limit <= 0 || key == "" {
		return Result{Allowed: true}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	now := m.now()

	if cfg := m.settings(); cfg.RedisEnabled && !m.breaker.open(now) {
		result, errRedis := m.allowRedis(ctx, cfg, key, limit, now)
		if errRedis == nil {
			return result, nil
		}
		if m.breaker.trip(now) {
			log.WithError(errRedis).Warn("rate limit: redis unavailable, falling back to memory")
		}
	}
	return m.memory.Allow(ctx, key, limit, now)
}

// Close releases the Redis client, if one was opened.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropRedisLocked()
}

func (m *Manager) allowRedis(ctx context.Context, cfg SettingsConfig, key string, limit int, now time.Time) (Result, error) {
	target, errTarget := targetFrom(cfg)
	if errTarget != nil {
		return Result{}, errTarget
	}
	limiter, errConnect := m.redisFor(ctx, target)
	if errConnect != nil {
		return Result{}, errConnect
	}
	return limiter.Allow(ctx, key, limit, now)
}

// redisFor returns the limiter for target, reconnecting when the target changed.
func (m *Manager) redisFor(ctx context.Context, target redisTarget) (*RedisLimiter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.redis != nil && m.target == target {
		return m.redis, nil
	}
	_ = m.dropRedisLocked()

	client := m.newClient(&redis.Options{Addr: target.addr, Password: target.password, DB: target.db})
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if errPing := client.Ping(pingCtx).Err(); errPing != nil {
		_ = client.Close()
		return nil, errPing
	}
	m.redis = NewRedisLimiter(client, target.prefix)
	m.target = target
	log.WithField("addr", target.addr).Info("rate limit: using redis backend")
	return m.redis, nil
}

func (m *Manager) dropRedisLocked() error {
	if m.redis == nil {
		return nil
	}
	errClose := m.redis.client.Close()
	m.redis = nil
	m.target = redisTarget{}
	return errClose
}
