// Package metrics holds the prometheus collectors shared by the server and
// the coach.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "star_coach_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "star_coach_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	StoriesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "star_coach_stories_evaluated_total",
			Help: "Total number of deterministic story evaluations",
		},
	)

	AIEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "star_coach_ai_evaluations_total",
			Help: "Total number of AI evaluations by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	AIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "star_coach_ai_request_duration_seconds",
			Help:    "Duration of model calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"operation"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "star_coach_ai_cache_lookups_total",
			Help: "AI result cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "star_coach_rate_limited_total",
			Help: "Requests rejected by the per-client AI rate limiter",
		},
	)
)

// AI outcome labels.
const (
	OutcomeOK               = "ok"
	OutcomeCached           = "cached"
	OutcomeRateLimited      = "rate_limited"
	OutcomeCreditsExhausted = "credits_exhausted"
	OutcomeInvalid          = "invalid"
	OutcomeError            = "error"
)

// Cache lookup labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ObserveAI records the duration of one model call started at start.
func ObserveAI(operation string, start time.Time) {
	AIDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
