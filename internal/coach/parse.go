package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/star-coach/internal/llm"
	"github.com/jonathan/star-coach/internal/metrics"
	"github.com/jonathan/star-coach/internal/prompts"
	"github.com/jonathan/star-coach/internal/schemas"
	"github.com/jonathan/star-coach/internal/types"
)

// MinParseLength is the shortest raw story, in characters, Parse accepts.
const MinParseLength = 50

// modelRefusal is the shape the parse prompt asks for on unusable input.
type modelRefusal struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// Parse splits free text into STAR sections with the lite model tier.
func (c *Coach) Parse(ctx context.Context, rawText string) (*types.ParsedStory, error) {
	text := strings.TrimSpace(rawText)
	if utf8.RuneCountInString(text) < MinParseLength {
		return nil, ErrInputTooShort
	}

	ids := make([]string, 0, len(types.LeadershipPrinciples()))
	for _, lp := range types.LeadershipPrinciples() {
		ids = append(ids, lp.ID)
	}
	prompt, err := prompts.Render("parsing.json", "parse-story", map[string]string{
		"Extraction": llm.BuildExtractionPrompt(llm.StarStorySchema(ids), text),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build parse prompt: %w", err)
	}

	start := time.Now()
	raw, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	metrics.ObserveAI("parse", start)
	if err != nil {
		return nil, c.providerError(c.logger, "parse", err)
	}

	parsed, err := decodeParsedStory(raw)
	if err != nil {
		c.logger.Warn("model returned an unusable parse", zap.Error(err))
		return nil, err
	}
	c.logger.Debug("parsed story",
		zap.String("title", parsed.Title),
		zap.String("confidence", string(parsed.Confidence)),
		zap.Strings("lps", parsed.SuggestedLPs))
	return parsed, nil
}

func decodeParsedStory(raw string) (*types.ParsedStory, error) {
	var refusal modelRefusal
	if err := json.Unmarshal([]byte(raw), &refusal); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldNotParse, err)
	}
	if refusal.Error != "" {
		reason := refusal.Reason
		if reason == "" {
			reason = refusal.Error
		}
		return nil, &RejectedInputError{Reason: reason}
	}

	if err := schemas.Validate(schemas.ParsedStory, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldNotParse, err)
	}

	var parsed types.ParsedStory
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCouldNotParse, err)
	}

	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.SuggestedLPs = catalogLPs(parsed.SuggestedLPs)
	if parsed.Metrics == nil {
		parsed.Metrics = []string{}
	}
	return &parsed, nil
}

// catalogLPs drops unknown and repeated ids, keeping order.
func catalogLPs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if !types.IsValidLP(id) || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
