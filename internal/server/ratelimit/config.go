package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int // 0 leaves unmatched endpoints unlimited
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // buckets idle this long are dropped
	EndpointConfigs []EndpointConfig
}

// NewConfig limits the model-backed routes to aiPerMinute requests per client
// per minute with the given burst. Everything else gets a generous default.
// aiPerMinute of 0 disables limiting.
func NewConfig(aiPerMinute float64, burst int) *Config {
	if aiPerMinute <= 0 {
		return &Config{Enabled: false}
	}
	limit := int(aiPerMinute)
	if limit < 1 {
		limit = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		EndpointConfigs: AIEndpointConfigs(limit, time.Minute, burst),
	}
}

// AIEndpointConfigs covers every route that calls the model.
func AIEndpointConfigs(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/stories/parse", Method: "POST", Limit: limit, Window: window, Burst: burst},
		// prefix: /stories/{id}/ai-evaluation
		{Path: "/stories/", Method: "POST", Limit: limit, Window: window, Burst: burst},
	}
}
