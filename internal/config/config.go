package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "CONFIG_PATH"

// Defaults applied when neither the file nor the environment sets a value.
const (
	defaultPort            = 8080
	defaultSQLitePath      = "contentforge.db"
	defaultJWTExpiry       = 24 * time.Hour
	defaultShutdownTimeout = 5 * time.Second
	defaultGrokBaseURL     = "https://api.x.ai/v1"
	defaultGrokModel       = "grok-2-latest"
	defaultGrokTimeout     = 10 * time.Second
	defaultOpenAIBaseURL   = "https://api.openai.com/v1"
	defaultOpenAIModel     = "gpt-4o"
	defaultOpenAITimeout   = 30 * time.Second
	defaultOpenAIMaxTokens = 500
	defaultTemperature     = 0.7
	defaultRedisPrefix     = "cf:rl"
	defaultLogMaxSizeMB    = 50
	defaultLogMaxBackups   = 5
	defaultLogMaxAgeDays   = 28
)

// ErrMissingJWTSecret indicates no signing secret is configured.
var ErrMissingJWTSecret = errors.New("missing jwt secret (set `jwt.secret` in config file or JWT_SECRET)")

// JWTConfig holds JWT secret and expiry settings.
type JWTConfig struct {
	Secret string        `yaml:"secret" envconfig:"JWT_SECRET"`
	Expiry time.Duration `yaml:"expiry" envconfig:"JWT_EXPIRY"`
}

// ProviderConfig describes one OpenAI-compatible chat-completions backend.
// Environment overrides are applied by providerEnv.
type ProviderConfig struct {
	APIKey      string        `yaml:"api-key"`
	BaseURL     string        `yaml:"base-url"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxTokens   int           `yaml:"max-tokens"`
	Temperature float64       `yaml:"temperature"`
}

// providerEnv maps provider environment variables onto ProvidersConfig.
type providerEnv struct {
	GrokAPIKey    string        `envconfig:"GROK_API_KEY"`
	GrokBaseURL   string        `envconfig:"GROK_BASE_URL"`
	GrokModel     string        `envconfig:"GROK_MODEL"`
	GrokTimeout   time.Duration `envconfig:"GROK_TIMEOUT"`
	OpenAIAPIKey  string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string        `envconfig:"OPENAI_MODEL"`
	OpenAITimeout time.Duration `envconfig:"OPENAI_TIMEOUT"`
}

func (e providerEnv) apply(p *ProvidersConfig) {
	overrideString(&p.Grok.APIKey, e.GrokAPIKey)
	overrideString(&p.Grok.BaseURL, e.GrokBaseURL)
	overrideString(&p.Grok.Model, e.GrokModel)
	if e.GrokTimeout > 0 {
		p.Grok.Timeout = e.GrokTimeout
	}
	overrideString(&p.OpenAI.APIKey, e.OpenAIAPIKey)
	overrideString(&p.OpenAI.BaseURL, e.OpenAIBaseURL)
	overrideString(&p.OpenAI.Model, e.OpenAIModel)
	if e.OpenAITimeout > 0 {
		p.OpenAI.Timeout = e.OpenAITimeout
	}
}

func overrideString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

// ProvidersConfig lists the generation providers in fallback order.
type ProvidersConfig struct {
	Grok   ProviderConfig `yaml:"grok"`
	OpenAI ProviderConfig `yaml:"openai"`
}

// RateLimitConfig controls per-user request throttling.
type RateLimitConfig struct {
	Limit         int    `yaml:"limit" envconfig:"RATE_LIMIT"`
	PremiumLimit  int    `yaml:"premium-limit" envconfig:"RATE_LIMIT_PREMIUM"`
	RedisEnabled  bool   `yaml:"redis-enabled" envconfig:"RATE_LIMIT_REDIS_ENABLED"`
	RedisAddr     string `yaml:"redis-addr" envconfig:"RATE_LIMIT_REDIS_ADDR"`
	RedisPassword string `yaml:"redis-password" envconfig:"RATE_LIMIT_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis-db" envconfig:"RATE_LIMIT_REDIS_DB"`
	RedisPrefix   string `yaml:"redis-prefix" envconfig:"RATE_LIMIT_REDIS_PREFIX"`
}

// LoggingConfig controls log level, format, and optional file rotation.
type LoggingConfig struct {
	Level      string `yaml:"level" envconfig:"LOG_LEVEL"`
	JSON       bool   `yaml:"json" envconfig:"LOG_JSON"`
	File       string `yaml:"file" envconfig:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAgeDays int    `yaml:"max-age-days"`
}

// AdminConfig seeds an administrator account at startup when set.
type AdminConfig struct {
	Email    string `yaml:"email" envconfig:"ADMIN_EMAIL"`
	Password string `yaml:"password" envconfig:"ADMIN_PASSWORD"`
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed-origins" envconfig:"CORS_ALLOWED_ORIGINS"`
}

// Config is the fully resolved application configuration.
type Config struct {
	Host            string          `yaml:"host" envconfig:"HOST"`
	Port            int             `yaml:"port" envconfig:"PORT"`
	Debug           bool            `yaml:"debug" envconfig:"DEBUG"`
	DatabaseDSN     string          `yaml:"database-dsn" envconfig:"DB_CONNECTION"`
	ShutdownTimeout time.Duration   `yaml:"shutdown-timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	JWT             JWTConfig       `yaml:"jwt"`
	Providers       ProvidersConfig `yaml:"providers" ignored:"true"`
	RateLimit       RateLimitConfig `yaml:"rate-limit"`
	Logging         LoggingConfig   `yaml:"logging"`
	Admin           AdminConfig     `yaml:"admin"`
	CORS            CORSConfig      `yaml:"cors"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// Load reads the optional YAML file at configPath, overlays environment
// variables, applies defaults, and validates the result.
func Load(configPath string) (Config, error) {
	var cfg Config

	data, errRead := os.ReadFile(configPath)
	switch {
	case errRead == nil:
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("parse config file: %w", errUnmarshal)
		}
	case errors.Is(errRead, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config file: %w", errRead)
	}

	if errEnv := envconfig.Process("", &cfg); errEnv != nil {
		return Config{}, fmt.Errorf("read environment: %w", errEnv)
	}
	var penv providerEnv
	if errEnv := envconfig.Process("", &penv); errEnv != nil {
		return Config{}, fmt.Errorf("read provider environment: %w", errEnv)
	}
	penv.apply(&cfg.Providers)

	applyDefaults(&cfg)

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return Config{}, ErrMissingJWTSecret
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	cfg.DatabaseDSN = strings.TrimSpace(cfg.DatabaseDSN)
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = BuildSQLiteDSN(defaultSQLitePath)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	cfg.JWT.Secret = strings.TrimSpace(cfg.JWT.Secret)
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = defaultJWTExpiry
	}

	applyProviderDefaults(&cfg.Providers.Grok, defaultGrokBaseURL, defaultGrokModel, defaultGrokTimeout)
	applyProviderDefaults(&cfg.Providers.OpenAI, defaultOpenAIBaseURL, defaultOpenAIModel, defaultOpenAITimeout)
	if cfg.Providers.OpenAI.MaxTokens <= 0 {
		cfg.Providers.OpenAI.MaxTokens = defaultOpenAIMaxTokens
	}

	if cfg.RateLimit.Limit < 0 {
		cfg.RateLimit.Limit = 0
	}
	if cfg.RateLimit.PremiumLimit < 0 {
		cfg.RateLimit.PremiumLimit = 0
	}
	if cfg.RateLimit.RedisDB < 0 {
		cfg.RateLimit.RedisDB = 0
	}
	cfg.RateLimit.RedisAddr = strings.TrimSpace(cfg.RateLimit.RedisAddr)
	cfg.RateLimit.RedisPrefix = strings.TrimSpace(cfg.RateLimit.RedisPrefix)
	if cfg.RateLimit.RedisPrefix == "" {
		cfg.RateLimit.RedisPrefix = defaultRedisPrefix
	}

	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
		if cfg.Debug {
			cfg.Logging.Level = "debug"
		}
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if cfg.Logging.MaxBackups <= 0 {
		cfg.Logging.MaxBackups = defaultLogMaxBackups
	}
	if cfg.Logging.MaxAgeDays <= 0 {
		cfg.Logging.MaxAgeDays = defaultLogMaxAgeDays
	}

	cfg.Admin.Email = strings.ToLower(strings.TrimSpace(cfg.Admin.Email))

	origins := cfg.CORS.AllowedOrigins[:0]
	for _, origin := range cfg.CORS.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.CORS.AllowedOrigins = origins
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
}

func applyProviderDefaults(p *ProviderConfig, baseURL, model string, timeout time.Duration) {
	p.APIKey = strings.TrimSpace(p.APIKey)
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	if strings.TrimSpace(p.Model) == "" {
		p.Model = model
	}
	if p.Timeout <= 0 {
		p.Timeout = timeout
	}
	if p.Temperature <= 0 {
		p.Temperature = defaultTemperature
	}
}

// BuildSQLiteDSN constructs a SQLite DSN with default parameters.
func BuildSQLiteDSN(path string) string {
	dsn := strings.TrimSpace(path)
	if dsn == "" {
		dsn = defaultSQLitePath
	}
	if !strings.HasPrefix(strings.ToLower(dsn), "file:") {
		dsn = "file:" + dsn
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + strings.Join([]string{
		"_pragma=busy_timeout(5000)",
		"_pragma=journal_mode(WAL)",
		"_pragma=foreign_keys(1)",
	}, "&")
}
