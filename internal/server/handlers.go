package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/jonathan/star-coach/internal/coverage"
	"github.com/jonathan/star-coach/internal/evaluator"
	"github.com/jonathan/star-coach/internal/metrics"
	"github.com/jonathan/star-coach/internal/types"
)

// maxBodyBytes caps request bodies; stories are a few KB.
const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON value from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Message: "request body is required"}
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// handlePrinciples lists the leadership principle catalog.
func (s *Server) handlePrinciples(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.LeadershipPrinciples())
}

// handleQuestions lists the question bank, optionally filtered by
// ?category= and ?lp=.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	lpID := r.URL.Query().Get("lp")

	if category != "" && category != types.CategoryAll && !slices.Contains(types.QuestionCategories(), category) {
		s.handleError(w, r, &ErrValidation{Field: "category", Message: fmt.Sprintf("unknown category %q", category)})
		return
	}
	if lpID != "" && lpID != coverage.AllLPs && !types.IsValidLP(lpID) {
		s.handleError(w, r, &ErrValidation{Field: "lp", Message: fmt.Sprintf("unknown leadership principle %q", lpID)})
		return
	}

	s.jsonResponse(w, http.StatusOK, coverage.FilterQuestions(category, lpID))
}

// handleEvaluate runs the deterministic evaluator on a posted story. Nothing
// is stored.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var story types.Story
	if err := decodeJSON(w, r, &story); err != nil {
		s.handleError(w, r, err)
		return
	}

	result := evaluator.Evaluate(&story)
	metrics.StoriesEvaluated.Inc()
	s.jsonResponse(w, http.StatusOK, result)
}
