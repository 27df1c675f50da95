package coach

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the coach. Callers match them with errors.Is.
var (
	// ErrCouldNotEvaluate means the model answered but the answer was not a
	// usable evaluation. No partial result is returned.
	ErrCouldNotEvaluate = errors.New("could not evaluate story")
	// ErrCouldNotParse means the model could not split the text into STAR sections.
	ErrCouldNotParse = errors.New("could not parse story")
	// ErrRateLimited means the provider rejected the call for rate or quota reasons.
	ErrRateLimited = errors.New("AI rate limit exceeded, please try again in a moment")
	// ErrCreditsExhausted means the provider account is out of credit.
	ErrCreditsExhausted = errors.New("AI credits depleted, please add credits to continue")
	// ErrAIUnavailable means the provider call failed for any other reason.
	ErrAIUnavailable = errors.New("AI service unavailable")
	// ErrIncompleteStory means there was nothing to evaluate.
	ErrIncompleteStory = errors.New("story has no STAR content to evaluate")
	// ErrInputTooShort means raw text was below MinParseLength.
	ErrInputTooShort = fmt.Errorf("story text must be at least %d characters", MinParseLength)
	// ErrInvalidMode means the evaluation mode is not feedback or scorecard.
	ErrInvalidMode = errors.New("invalid evaluation mode")
)

// RejectedInputError is returned when the model declines to parse the input,
// e.g. because it is not a professional story.
type RejectedInputError struct {
	Reason string
}

func (e *RejectedInputError) Error() string {
	if e.Reason == "" {
		return ErrCouldNotParse.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCouldNotParse, e.Reason)
}

func (e *RejectedInputError) Unwrap() error {
	return ErrCouldNotParse
}
