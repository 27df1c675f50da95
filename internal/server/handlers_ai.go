package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/star-coach/internal/types"
)

// ParseRequest is the body of POST /stories/parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse carries the raw parse and a ready-to-edit story built from it.
type ParseResponse struct {
	Parsed *types.ParsedStory `json:"parsed"`
	Story  types.Story        `json:"story"`
}

// handleAIEvaluation asks the model to evaluate a stored story.
// ?mode=feedback|scorecard (default feedback), ?targetLevel= overrides the
// configured level.
func (s *Server) handleAIEvaluation(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		s.handleError(w, r, ErrAINotConfigured)
		return
	}
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	mode, valid := types.ParseEvaluationMode(r.URL.Query().Get("mode"))
	if !valid {
		s.handleError(w, r, &ErrValidation{Field: "mode", Message: "must be feedback or scorecard"})
		return
	}

	story, ok := s.loadStory(w, r, ownerID)
	if !ok {
		return
	}

	targetLevel := strings.TrimSpace(r.URL.Query().Get("targetLevel"))
	if targetLevel == "" {
		targetLevel = s.targetLevel
	}

	eval, err := s.ai.Evaluate(r.Context(), story.ID, types.NewEvaluationRequest(story, targetLevel), mode)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, eval)
}

// handleParseStory splits free text into STAR sections. The result is not
// stored; the client saves it with POST /stories after review.
func (s *Server) handleParseStory(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		s.handleError(w, r, ErrAINotConfigured)
		return
	}
	if _, ok := s.owner(w, r); !ok {
		return
	}

	var req ParseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	parsed, err := s.ai.Parse(r.Context(), req.Text)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ParseResponse{Parsed: parsed, Story: parsed.ToStory()})
}
