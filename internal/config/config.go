// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STAR_COACH_PORT.
const EnvPrefix = "STAR_COACH"

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "console"
	DefaultCacheTTL          = 24 * time.Hour
	DefaultAIConcurrency     = 4
	DefaultAIRatePerMinute   = 10
	DefaultAIBurst           = 3
	DefaultJWTExpirationHour = 24
)

// Config represents the application configuration. Every field can come from
// a config file (json or yaml) or from the environment.
type Config struct {
	// Storage
	DatabaseURL string        `mapstructure:"database_url"`
	RedisURL    string        `mapstructure:"redis_url"` // empty disables the AI result cache
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`

	// AI
	GeminiAPIKey  string `mapstructure:"gemini_api_key"`
	Model         string `mapstructure:"model"` // overrides every model tier when set
	TargetLevel   string `mapstructure:"target_level"`
	AIConcurrency int    `mapstructure:"ai_concurrency"`

	// HTTP
	Port            int     `mapstructure:"port"`
	AIRatePerMinute float64 `mapstructure:"ai_rate_per_minute"`
	AIBurst         int     `mapstructure:"ai_burst"`

	// Auth
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CacheTTL:           DefaultCacheTTL,
		AIConcurrency:      DefaultAIConcurrency,
		Port:               DefaultPort,
		AIRatePerMinute:    DefaultAIRatePerMinute,
		AIBurst:            DefaultAIBurst,
		JWTExpirationHours: DefaultJWTExpirationHour,
		LogLevel:           DefaultLogLevel,
		LogFormat:          DefaultLogFormat,
	}
}

// unprefixed lists keys that also honour a bare, conventional env name.
var unprefixed = map[string]string{
	"database_url":         "DATABASE_URL",
	"redis_url":            "REDIS_URL",
	"gemini_api_key":       "GEMINI_API_KEY",
	"jwt_secret":           "JWT_SECRET",
	"jwt_expiration_hours": "JWT_EXPIRATION_HOURS",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("redis_url", d.RedisURL)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("gemini_api_key", d.GeminiAPIKey)
	v.SetDefault("model", d.Model)
	v.SetDefault("target_level", d.TargetLevel)
	v.SetDefault("ai_concurrency", d.AIConcurrency)
	v.SetDefault("port", d.Port)
	v.SetDefault("ai_rate_per_minute", d.AIRatePerMinute)
	v.SetDefault("ai_burst", d.AIBurst)
	v.SetDefault("jwt_secret", d.JWTSecret)
	v.SetDefault("jwt_expiration_hours", d.JWTExpirationHours)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	for key, env := range unprefixed {
		// Prefixed name first so it wins over the bare one.
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), env)
	}
	return v
}

// LoadConfig loads configuration from path (json or yaml) layered over the
// defaults, with environment variables taking precedence over both. An
// empty path looks for star_coach.{json,yaml,yml} in the working directory
// and tolerates its absence.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("star_coach")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required
// credentials are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.AIConcurrency < 0 {
		return fmt.Errorf("config error: 'ai_concurrency' must be non-negative")
	}
	if c.AIRatePerMinute < 0 {
		return fmt.Errorf("config error: 'ai_rate_per_minute' must be non-negative")
	}
	if c.AIBurst < 0 {
		return fmt.Errorf("config error: 'ai_burst' must be non-negative")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: 'cache_ttl' must be non-negative")
	}
	if c.JWTExpirationHours < 0 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be non-negative")
	}
	switch c.LogFormat {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// The CLI builds a Config from its flags and merges the loaded file into it.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.TargetLevel == "" {
		result.TargetLevel = defaults.TargetLevel
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.CacheTTL == 0 {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.AIConcurrency == 0 {
		result.AIConcurrency = defaults.AIConcurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AIRatePerMinute == 0 {
		result.AIRatePerMinute = defaults.AIRatePerMinute
	}
	if result.AIBurst == 0 {
		result.AIBurst = defaults.AIBurst
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}

	return result
}
