package server

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/star-coach/internal/coverage"
	"github.com/jonathan/star-coach/internal/evaluator"
	"github.com/jonathan/star-coach/internal/metrics"
	"github.com/jonathan/star-coach/internal/server/middleware"
	"github.com/jonathan/star-coach/internal/types"
)

// owner returns the authenticated owner, writing 401 when missing.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, err := middleware.OwnerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return ownerID, true
}

// loadStory fetches the path's story for the owner, writing 404 when absent.
func (s *Server) loadStory(w http.ResponseWriter, r *http.Request, ownerID uuid.UUID) (*types.Story, bool) {
	storyID := r.PathValue("id")
	story, err := s.store.GetStory(r.Context(), ownerID, storyID)
	if err != nil {
		s.handleError(w, r, err)
		return nil, false
	}
	if story == nil {
		s.handleError(w, r, &ErrStoryNotFound{StoryID: storyID})
		return nil, false
	}
	return story, true
}

func validateStory(story *types.Story) error {
	if err := story.Validate(); err != nil {
		return &ErrValidation{Message: err.Error()}
	}
	return nil
}

// handleListStories returns the owner's stories, newest first.
func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	stories, err := s.store.ListStories(r.Context(), ownerID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stories)
}

// handleCreateStory stores a new story. A missing id is generated and a
// missing strength defaults to 3.
func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	var story types.Story
	if err := decodeJSON(w, r, &story); err != nil {
		s.handleError(w, r, err)
		return
	}
	if story.ID == "" {
		story.ID = uuid.NewString()
	}
	if story.Strength == 0 {
		story.Strength = types.DefaultStrength
	}
	if err := validateStory(&story); err != nil {
		s.handleError(w, r, err)
		return
	}

	saved, err := s.store.UpsertStory(r.Context(), ownerID, &story)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

// handleUpdateStory replaces an existing story.
func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	var story types.Story
	if err := decodeJSON(w, r, &story); err != nil {
		s.handleError(w, r, err)
		return
	}
	storyID := r.PathValue("id")
	if story.ID != "" && story.ID != storyID {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "does not match the URL"})
		return
	}
	story.ID = storyID
	if err := validateStory(&story); err != nil {
		s.handleError(w, r, err)
		return
	}

	if _, ok := s.loadStory(w, r, ownerID); !ok {
		return
	}

	saved, err := s.store.UpsertStory(r.Context(), ownerID, &story)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.forgetEvaluations(r, storyID)
	s.jsonResponse(w, http.StatusOK, saved)
}

// handleDeleteStory removes a story.
func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	storyID := r.PathValue("id")
	deleted, err := s.store.DeleteStory(r.Context(), ownerID, storyID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !deleted {
		s.handleError(w, r, &ErrStoryNotFound{StoryID: storyID})
		return
	}
	s.forgetEvaluations(r, storyID)
	w.WriteHeader(http.StatusNoContent)
}

// forgetEvaluations drops cached AI results for a story that changed or is
// gone. Failures are logged; the cache entries expire on their own.
func (s *Server) forgetEvaluations(r *http.Request, storyID string) {
	if s.ai == nil {
		return
	}
	if err := s.ai.Forget(r.Context(), storyID); err != nil {
		s.logger.Warn("failed to evict cached evaluations", zap.String("story_id", storyID), zap.Error(err))
	}
}

// handleStoryEvaluation runs the deterministic evaluator on a stored story.
func (s *Server) handleStoryEvaluation(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}
	story, ok := s.loadStory(w, r, ownerID)
	if !ok {
		return
	}

	result := evaluator.Evaluate(story)
	metrics.StoriesEvaluated.Inc()
	s.jsonResponse(w, http.StatusOK, result)
}

// CoverageResponse is the body of GET /coverage.
type CoverageResponse struct {
	Summary []coverage.LPCoverage       `json:"summary"`
	Gaps    []types.LeadershipPrinciple `json:"gaps"`
	Matrix  []coverage.MatrixRow        `json:"matrix"`
}

// handleCoverage reports LP coverage across the owner's stories.
func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	stories, err := s.store.ListStories(r.Context(), ownerID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	summary := coverage.Summarize(stories)
	s.jsonResponse(w, http.StatusOK, CoverageResponse{
		Summary: summary,
		Gaps:    coverage.Gaps(summary),
		Matrix:  coverage.Matrix(stories),
	})
}

// QuestionStoriesResponse is the body of GET /questions/{id}/stories.
type QuestionStoriesResponse struct {
	Question types.Question `json:"question"`
	Stories  []types.Story  `json:"stories"`
}

// handleQuestionStories lists the owner's stories that can answer a question.
func (s *Server) handleQuestionStories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	questionID := r.PathValue("id")
	question, found := types.GetQuestion(questionID)
	if !found {
		s.handleError(w, r, &ErrQuestionNotFound{QuestionID: questionID})
		return
	}

	stories, err := s.store.ListStories(r.Context(), ownerID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, QuestionStoriesResponse{
		Question: question,
		Stories:  coverage.StoriesForQuestion(question, stories),
	})
}
