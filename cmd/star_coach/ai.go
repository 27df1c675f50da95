package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/star-coach/internal/cache"
	"github.com/jonathan/star-coach/internal/coach"
	"github.com/jonathan/star-coach/internal/config"
	"github.com/jonathan/star-coach/internal/llm"
)

// llmConfig applies the configured model override to every tier.
func llmConfig(cfg *config.Config) *llm.Config {
	c := llm.DefaultConfig()
	for _, tier := range []llm.ModelTier{llm.TierLite, llm.TierStandard, llm.TierAdvanced} {
		c = c.WithModel(tier, cfg.Model)
	}
	return c
}

// newCoach builds a coach from configuration. When a Redis URL is configured
// evaluations are cached there. The returned cleanup closes every client.
func newCoach(ctx context.Context, cfg *config.Config, log *zap.Logger) (*coach.Coach, func(), error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	client, err := llm.NewClient(ctx, llmConfig(cfg), cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closers := []func() error{client.Close}
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Warn("failed to close client", zap.Error(err))
			}
		}
	}

	opts := []coach.Option{coach.WithLogger(log), coach.WithConcurrency(cfg.AIConcurrency)}
	if cfg.RedisURL != "" {
		rc, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, rc.Close)
		if err := rc.Ping(ctx); err != nil {
			// A dead cache only costs extra model calls.
			log.Warn("redis unavailable, evaluations will not be cached", zap.Error(err))
		} else {
			opts = append(opts, coach.WithCache(rc))
		}
	}

	return coach.New(client, opts...), cleanup, nil
}
