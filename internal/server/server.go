// Package server provides the HTTP REST API for the story coach.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/star-coach/internal/config"
	"github.com/jonathan/star-coach/internal/logging"
	"github.com/jonathan/star-coach/internal/metrics"
	"github.com/jonathan/star-coach/internal/server/middleware"
	"github.com/jonathan/star-coach/internal/server/ratelimit"
	"github.com/jonathan/star-coach/internal/types"
)

// Store persists stories per owner. *db.DB satisfies it.
type Store interface {
	ListStories(ctx context.Context, ownerID uuid.UUID) ([]types.Story, error)
	GetStory(ctx context.Context, ownerID uuid.UUID, storyID string) (*types.Story, error)
	UpsertStory(ctx context.Context, ownerID uuid.UUID, story *types.Story) (*types.Story, error)
	DeleteStory(ctx context.Context, ownerID uuid.UUID, storyID string) (bool, error)
}

// AIEvaluator is the model-backed coach. *coach.Coach satisfies it.
type AIEvaluator interface {
	Evaluate(ctx context.Context, storyID string, req types.EvaluationRequest, mode types.EvaluationMode) (*types.AIEvaluation, error)
	Parse(ctx context.Context, rawText string) (*types.ParsedStory, error)
	Forget(ctx context.Context, storyID string) error
}

// Config holds server configuration
type Config struct {
	Port        int
	JWT         *config.JWTConfig
	RateLimit   *ratelimit.Config
	TargetLevel string // default level sent with AI evaluations
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	ai          AIEvaluator
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	targetLevel string
}

// New creates a new server instance. ai may be nil, in which case the AI
// routes answer 503.
func New(cfg Config, store Store, ai AIEvaluator, logger *zap.Logger) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("story store is required")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("JWT configuration is required")
	}

	s := &Server{
		store:       store,
		ai:          ai,
		jwtService:  NewJWTService(cfg.JWT),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      logging.OrNop(logger),
		targetLevel: cfg.TargetLevel,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	private := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /principles", s.handlePrinciples)
	mux.HandleFunc("GET /questions", s.handleQuestions)
	mux.HandleFunc("POST /evaluate", s.handleEvaluate)

	// Story endpoints, scoped to the token's owner
	mux.Handle("GET /stories", private(s.handleListStories))
	mux.Handle("POST /stories", private(s.handleCreateStory))
	mux.Handle("PUT /stories/{id}", private(s.handleUpdateStory))
	mux.Handle("DELETE /stories/{id}", private(s.handleDeleteStory))
	mux.Handle("GET /stories/{id}/evaluation", private(s.handleStoryEvaluation))
	mux.Handle("POST /stories/{id}/ai-evaluation", private(s.handleAIEvaluation))
	mux.Handle("POST /stories/parse", private(s.handleParseStory))
	mux.Handle("GET /coverage", private(s.handleCoverage))
	mux.Handle("GET /questions/{id}/stories", private(s.handleQuestionStories))

	return s.withLogging(s.withRateLimit(s.withCORS(mux)))
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their bucket with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			metrics.RateLimited.Inc()
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs and counts every request by its route pattern.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
			zap.String("remote", r.RemoteAddr))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status and writes it. Server-side failures are
// logged with their cause.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	s.errorResponse(w, status, publicMessage(err, status))
}

// extractClientID uses the IP address from RemoteAddr. Forwarded headers are
// not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	retryAfter := int(info.RetryAfter.Round(time.Second).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Duration("retry_after", info.RetryAfter))

	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate limit exceeded, please try again later",
		"limit":       info.Limit,
		"retry_after": retryAfter,
	})
}
