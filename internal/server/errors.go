package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/star-coach/internal/coach"
)

// ErrStoryNotFound indicates the story does not exist for the caller.
type ErrStoryNotFound struct {
	StoryID string
}

func (e *ErrStoryNotFound) Error() string {
	return fmt.Sprintf("story not found: %s", e.StoryID)
}

// ErrQuestionNotFound indicates an unknown question id.
type ErrQuestionNotFound struct {
	QuestionID string
}

func (e *ErrQuestionNotFound) Error() string {
	return fmt.Sprintf("question not found: %s", e.QuestionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAINotConfigured is returned by the AI routes when no model client is set.
var ErrAINotConfigured = errors.New("AI evaluation is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrStoryNotFound
		noQuestion *ErrQuestionNotFound
		invalid    *ErrValidation
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &noQuestion):
		return http.StatusNotFound
	case errors.As(err, &invalid),
		errors.Is(err, coach.ErrIncompleteStory),
		errors.Is(err, coach.ErrInputTooShort),
		errors.Is(err, coach.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, coach.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, coach.ErrCreditsExhausted):
		return http.StatusPaymentRequired
	case errors.Is(err, coach.ErrCouldNotEvaluate),
		errors.Is(err, coach.ErrCouldNotParse),
		errors.Is(err, coach.ErrAIUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrAINotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the text sent to clients. Internal failures are not
// described beyond their status.
func publicMessage(err error, status int) string {
	switch {
	case status == http.StatusInternalServerError:
		return "internal server error"
	case errors.Is(err, coach.ErrRateLimited):
		return coach.ErrRateLimited.Error()
	case errors.Is(err, coach.ErrCreditsExhausted):
		return coach.ErrCreditsExhausted.Error()
	case errors.Is(err, coach.ErrAIUnavailable):
		return coach.ErrAIUnavailable.Error()
	case errors.Is(err, coach.ErrCouldNotEvaluate):
		return coach.ErrCouldNotEvaluate.Error()
	default:
		return err.Error()
	}
}
