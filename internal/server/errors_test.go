package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/star-coach/internal/coach"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"story not found", &ErrStoryNotFound{StoryID: "s1"}, http.StatusNotFound},
		{"question not found", &ErrQuestionNotFound{QuestionID: "q99"}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "title", Message: "required"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("bad body: %w", &ErrValidation{Message: "x"}), http.StatusBadRequest},
		{"incomplete story", coach.ErrIncompleteStory, http.StatusBadRequest},
		{"too short", coach.ErrInputTooShort, http.StatusBadRequest},
		{"invalid mode", fmt.Errorf("%w: essay", coach.ErrInvalidMode), http.StatusBadRequest},
		{"rate limited", fmt.Errorf("%w: quota", coach.ErrRateLimited), http.StatusTooManyRequests},
		{"credits exhausted", fmt.Errorf("%w: googleapi 402", coach.ErrCreditsExhausted), http.StatusPaymentRequired},
		{"could not evaluate", fmt.Errorf("%w: schema", coach.ErrCouldNotEvaluate), http.StatusBadGateway},
		{"rejected input", &coach.RejectedInputError{Reason: "recipe"}, http.StatusBadGateway},
		{"provider down", coach.ErrAIUnavailable, http.StatusBadGateway},
		{"not configured", ErrAINotConfigured, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "internal server error", publicMessage(errors.New("pq: password leaked"), http.StatusInternalServerError))
	assert.Equal(t, coach.ErrCouldNotEvaluate.Error(),
		publicMessage(fmt.Errorf("%w: raw model text", coach.ErrCouldNotEvaluate), http.StatusBadGateway))
	assert.Equal(t, coach.ErrCreditsExhausted.Error(),
		publicMessage(fmt.Errorf("%w: account 1234", coach.ErrCreditsExhausted), http.StatusPaymentRequired))
	assert.Equal(t, "validation error: title - required",
		publicMessage(&ErrValidation{Field: "title", Message: "required"}, http.StatusBadRequest))
}
