package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_DefaultExpiration(t *testing.T) {
	cfg := Config{JWTSecret: "test-secret-key"}

	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", jwtCfg.Secret)
	assert.Equal(t, 24, jwtCfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, 24*time.Hour, jwtCfg.Expiration())
}

func TestJWT_CustomExpiration(t *testing.T) {
	cfg := Config{JWTSecret: "s", JWTExpirationHours: 72}

	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, 72, jwtCfg.ExpirationHours)
}

func TestJWT_MissingSecret(t *testing.T) {
	cfg := Config{}

	_, err := cfg.JWT()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestJWT_InvalidExpiration(t *testing.T) {
	cfg := Config{JWTSecret: "s", JWTExpirationHours: -3}

	_, err := cfg.JWT()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 hour")
}

func TestJWT_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "12")

	cfg, err := LoadConfig(writeFile(t, "c.yaml", "port: 8080\n"))
	require.NoError(t, err)

	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, "env-secret", jwtCfg.Secret)
	assert.Equal(t, 12, jwtCfg.ExpirationHours)
}
