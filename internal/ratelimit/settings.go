package ratelimit

import (
	"strings"

	"github.com/contentforge/contentforge-api/internal/config"
)

// SettingsConfig captures the rate limit settings in effect.
type SettingsConfig struct {
	Limit         int
	PremiumLimit  int
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// SettingsFromConfig converts the loaded configuration section.
func SettingsFromConfig(cfg config.RateLimitConfig) SettingsConfig {
	out := SettingsConfig{
		Limit:         cfg.Limit,
		PremiumLimit:  cfg.PremiumLimit,
		RedisEnabled:  cfg.RedisEnabled,
		RedisAddr:     strings.TrimSpace(cfg.RedisAddr),
		RedisPassword: strings.TrimSpace(cfg.RedisPassword),
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   strings.TrimSpace(cfg.RedisPrefix),
	}
	if out.Limit < 0 {
		out.Limit = 0
	}
	if out.PremiumLimit < 0 {
		out.PremiumLimit = 0
	}
	if out.RedisDB < 0 {
		out.RedisDB = 0
	}
	return out
}

// StaticSettings returns a SettingsProvider that always yields cfg.
func StaticSettings(cfg config.RateLimitConfig) SettingsProvider {
	settings := SettingsFromConfig(cfg)
	return func() SettingsConfig { return settings }
}
