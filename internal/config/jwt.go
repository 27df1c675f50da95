package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// JWT builds the token configuration. JWT_SECRET is required, the
// expiration defaults to 24 hours.
func (c *Config) JWT() (*JWTConfig, error) {
	hours := c.JWTExpirationHours
	if hours == 0 {
		hours = DefaultJWTExpirationHour
	}

	jwtConfig := &JWTConfig{
		Secret:          c.JWTSecret,
		ExpirationHours: hours,
	}
	if err := jwtConfig.normalize(); err != nil {
		return nil, err
	}
	return jwtConfig, nil
}

// Expiration is the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
