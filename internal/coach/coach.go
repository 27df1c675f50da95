// Package coach runs AI-backed story evaluation and story parsing on top of
// an llm.Client. Model output is schema-checked before it is returned; an
// unusable answer is an error, never a guessed result.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/star-coach/internal/cache"
	"github.com/jonathan/star-coach/internal/llm"
	"github.com/jonathan/star-coach/internal/logging"
	"github.com/jonathan/star-coach/internal/metrics"
	"github.com/jonathan/star-coach/internal/prompts"
	"github.com/jonathan/star-coach/internal/schemas"
	"github.com/jonathan/star-coach/internal/types"
)

// Cache stores serialized evaluations. *cache.Cache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Evict(ctx context.Context, storyID string) (int, error)
}

// Coach evaluates and parses stories with a language model.
type Coach struct {
	client      llm.Client
	cache       Cache
	logger      *zap.Logger
	concurrency int
}

// Option configures a Coach.
type Option func(*Coach)

// WithCache enables result caching.
func WithCache(c Cache) Option {
	return func(co *Coach) { co.cache = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(co *Coach) { co.logger = logging.OrNop(l) }
}

// WithConcurrency bounds EvaluateMany. Zero or less means GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(co *Coach) { co.concurrency = n }
}

// New returns a Coach backed by client.
func New(client llm.Client, opts ...Option) *Coach {
	c := &Coach{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency <= 0 {
		c.concurrency = runtime.GOMAXPROCS(0)
	}
	return c
}

func tierFor(mode types.EvaluationMode) llm.ModelTier {
	if mode == types.ModeScorecard {
		return llm.TierAdvanced
	}
	return llm.TierStandard
}

func schemaFor(mode types.EvaluationMode) string {
	if mode == types.ModeScorecard {
		return schemas.Scorecard
	}
	return schemas.Feedback
}

// Evaluate asks the model to evaluate one story. storyID only scopes the
// cache entry and is echoed in the result; it may be empty.
func (c *Coach) Evaluate(ctx context.Context, storyID string, req types.EvaluationRequest, mode types.EvaluationMode) (*types.AIEvaluation, error) {
	if mode != types.ModeFeedback && mode != types.ModeScorecard {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if isBlank(req.Story) {
		return nil, ErrIncompleteStory
	}

	log := c.logger.With(zap.String("story_id", storyID), zap.String("mode", string(mode)))
	key := c.cacheKey(storyID, req, mode)

	if cached := c.lookup(ctx, log, key); cached != nil {
		metrics.AIEvaluations.WithLabelValues(string(mode), metrics.OutcomeCached).Inc()
		cached.StoryID = storyID
		return cached, nil
	}

	prompt, err := buildEvaluationPrompt(req, mode)
	if err != nil {
		return nil, err
	}

	tier := tierFor(mode)
	start := time.Now()
	raw, err := c.client.GenerateJSON(ctx, prompt, tier)
	metrics.ObserveAI("evaluate_"+string(mode), start)
	if err != nil {
		return nil, c.providerError(log, string(mode), err)
	}

	eval, err := decodeEvaluation(raw, mode)
	if err != nil {
		metrics.AIEvaluations.WithLabelValues(string(mode), metrics.OutcomeInvalid).Inc()
		log.Warn("model returned an unusable evaluation", zap.Error(err))
		return nil, err
	}
	eval.StoryID = storyID
	eval.Model = c.client.GetModel(tier)

	if sc := eval.Scorecard; sc != nil && sc.Breakdown.Total() != sc.TotalScore {
		log.Warn("scorecard total does not match breakdown",
			zap.Int("total", sc.TotalScore), zap.Int("breakdown", sc.Breakdown.Total()))
	}

	metrics.AIEvaluations.WithLabelValues(string(mode), metrics.OutcomeOK).Inc()
	c.store(ctx, log, key, eval)
	return eval, nil
}

// BatchItem is one story of an EvaluateMany call.
type BatchItem struct {
	StoryID string
	Request types.EvaluationRequest
}

// BatchResult pairs a story id with its evaluation or error.
type BatchResult struct {
	StoryID    string
	Evaluation *types.AIEvaluation
	Err        error
}

// EvaluateMany evaluates items concurrently. Results keep the input order and
// one failure does not cancel the others.
func (c *Coach) EvaluateMany(ctx context.Context, items []BatchItem, mode types.EvaluationMode) []BatchResult {
	results := make([]BatchResult, len(items))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, item := range items {
		g.Go(func() error {
			eval, err := c.Evaluate(ctx, item.StoryID, item.Request, mode)
			results[i] = BatchResult{StoryID: item.StoryID, Evaluation: eval, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Coach) providerError(log *zap.Logger, mode string, err error) error {
	if errors.Is(err, llm.ErrCreditsExhausted) || llm.IsCreditsError(err) {
		metrics.AIEvaluations.WithLabelValues(mode, metrics.OutcomeCreditsExhausted).Inc()
		log.Error("model call rejected, credits exhausted", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrCreditsExhausted, err)
	}
	if errors.Is(err, llm.ErrQuotaExceeded) || llm.IsQuotaError(err) {
		metrics.AIEvaluations.WithLabelValues(mode, metrics.OutcomeRateLimited).Inc()
		log.Warn("model call rate limited", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	metrics.AIEvaluations.WithLabelValues(mode, metrics.OutcomeError).Inc()
	log.Error("model call failed", zap.Error(err))
	return fmt.Errorf("%w: %w", ErrAIUnavailable, err)
}

func (c *Coach) cacheKey(storyID string, req types.EvaluationRequest, mode types.EvaluationMode) string {
	if c.cache == nil {
		return ""
	}
	content, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	if storyID == "" {
		storyID = "adhoc"
	}
	return cache.Key(string(mode), storyID, content)
}

// lookup never fails the evaluation; cache errors only count as misses.
func (c *Coach) lookup(ctx context.Context, log *zap.Logger, key string) *types.AIEvaluation {
	if key == "" {
		return nil
	}
	raw, found, err := c.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(metrics.CacheError).Inc()
		log.Warn("cache read failed", zap.Error(err))
		return nil
	}
	if !found {
		metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		return nil
	}

	var eval types.AIEvaluation
	if err := json.Unmarshal(raw, &eval); err != nil {
		metrics.CacheLookups.WithLabelValues(metrics.CacheError).Inc()
		log.Warn("discarding corrupt cache entry", zap.Error(err))
		return nil
	}
	metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()
	eval.Cached = true
	return &eval
}

func (c *Coach) store(ctx context.Context, log *zap.Logger, key string, eval *types.AIEvaluation) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(eval)
	if err != nil {
		log.Warn("failed to encode evaluation for cache", zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, raw); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}
}

// Forget drops every cached evaluation of storyID. It is a no-op without a
// cache.
func (c *Coach) Forget(ctx context.Context, storyID string) error {
	if c.cache == nil || storyID == "" {
		return nil
	}
	n, err := c.cache.Evict(ctx, storyID)
	if err != nil {
		return fmt.Errorf("failed to evict cached evaluations: %w", err)
	}
	c.logger.Debug("evicted cached evaluations", zap.String("story_id", storyID), zap.Int("count", n))
	return nil
}

func decodeEvaluation(raw string, mode types.EvaluationMode) (*types.AIEvaluation, error) {
	if err := schemas.Validate(schemaFor(mode), raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldNotEvaluate, err)
	}

	eval := &types.AIEvaluation{Mode: mode}
	var err error
	if mode == types.ModeScorecard {
		eval.Scorecard = &types.AIScorecard{}
		err = json.Unmarshal([]byte(raw), eval.Scorecard)
	} else {
		eval.Feedback = &types.AIFeedback{}
		err = json.Unmarshal([]byte(raw), eval.Feedback)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldNotEvaluate, err)
	}
	return eval, nil
}

func isBlank(p types.StoryPayload) bool {
	return strings.TrimSpace(p.Situation) == "" &&
		strings.TrimSpace(p.Task) == "" &&
		strings.TrimSpace(p.Action) == "" &&
		strings.TrimSpace(p.Result) == ""
}

func lpNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if lp, ok := types.GetLP(id); ok {
			names = append(names, lp.Name)
		} else {
			names = append(names, id)
		}
	}
	if len(names) == 0 {
		return "None specified"
	}
	return strings.Join(names, ", ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func buildEvaluationPrompt(req types.EvaluationRequest, mode types.EvaluationMode) (string, error) {
	metricList := make([]string, 0, len(req.Story.Metrics))
	for _, m := range req.Story.Metrics {
		if strings.TrimSpace(m) != "" {
			metricList = append(metricList, m)
		}
	}

	story, err := prompts.Render("evaluation.json", "story", map[string]string{
		"PrimaryLPs":   lpNames(req.PrimaryLPs),
		"SecondaryLPs": lpNames(req.SecondaryLPs),
		"TargetLevel":  orDefault(req.TargetLevel, "Not specified"),
		"Situation":    orDefault(req.Story.Situation, "(empty)"),
		"Task":         orDefault(req.Story.Task, "(empty)"),
		"Action":       orDefault(req.Story.Action, "(empty)"),
		"Result":       orDefault(req.Story.Result, "(empty)"),
		"Metrics":      orDefault(strings.Join(metricList, ", "), "None provided"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to build story prompt: %w", err)
	}

	system, err := prompts.Get("evaluation.json", "system")
	if err != nil {
		return "", fmt.Errorf("failed to build story prompt: %w", err)
	}

	prompt, err := prompts.Render("evaluation.json", string(mode), map[string]string{"System": system, "Story": story})
	if err != nil {
		return "", fmt.Errorf("failed to build %s prompt: %w", mode, err)
	}
	return prompt, nil
}
