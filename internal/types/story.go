// Package types provides type definitions for the stories, principles and evaluation
// results shared across the star-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DefaultStrength is the self-rating given to a freshly created story.
const DefaultStrength = 3

// Story is a candidate's prepared STAR answer.
type Story struct {
	ID               string        `json:"id" yaml:"id"`
	Title            string        `json:"title" yaml:"title"`
	Company          string        `json:"company" yaml:"company"`
	Role             string        `json:"role" yaml:"role"`
	Situation        string        `json:"situation" yaml:"situation"`
	Task             string        `json:"task" yaml:"task"`
	Action           string        `json:"action" yaml:"action"`
	Result           string        `json:"result" yaml:"result"`
	Metrics          []string      `json:"metrics" yaml:"metrics"`
	LPs              LPAssignments `json:"-" yaml:"-"`
	Strength         int           `json:"strength" yaml:"strength"`
	QuestionsMatched []string      `json:"questionsMatched" yaml:"questionsMatched"`
}

// NewStory returns an empty story with a fresh ID, as the editor creates it.
func NewStory() Story {
	return Story{
		ID:               uuid.NewString(),
		Metrics:          []string{},
		Strength:         DefaultStrength,
		QuestionsMatched: []string{},
	}
}

// PrimaryLPs returns the primary LP ids in assignment order.
func (s *Story) PrimaryLPs() []string {
	return s.LPs.IDs(LPRolePrimary)
}

// SecondaryLPs returns the secondary LP ids in assignment order.
func (s *Story) SecondaryLPs() []string {
	return s.LPs.IDs(LPRoleSecondary)
}

// ToggleLP flips an LP on the given side. An LP already holding role is removed;
// otherwise it is assigned role, leaving the other side.
func (s *Story) ToggleLP(lpID string, role LPRole) {
	if s.LPs.RoleOf(lpID) == role {
		s.LPs = s.LPs.Without(lpID)
		return
	}
	s.LPs = s.LPs.With(lpID, role)
}

// AllLPs returns every LP id on the story, primary and secondary, in assignment order.
func (s *Story) AllLPs() []string {
	ids := make([]string, 0, len(s.LPs))
	for _, a := range s.LPs {
		ids = append(ids, a.ID)
	}
	return ids
}

// HasQuestion reports whether the story was matched to the given question id.
func (s *Story) HasQuestion(questionID string) bool {
	for _, q := range s.QuestionsMatched {
		if q == questionID {
			return true
		}
	}
	return false
}

// storyWire is the external shape of a Story, with LP sets as two arrays.
type storyWire struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Company          string   `json:"company" yaml:"company"`
	Role             string   `json:"role" yaml:"role"`
	Situation        string   `json:"situation" yaml:"situation"`
	Task             string   `json:"task" yaml:"task"`
	Action           string   `json:"action" yaml:"action"`
	Result           string   `json:"result" yaml:"result"`
	Metrics          []string `json:"metrics" yaml:"metrics"`
	PrimaryLPs       []string `json:"primaryLPs" yaml:"primaryLPs"`
	SecondaryLPs     []string `json:"secondaryLPs" yaml:"secondaryLPs"`
	Strength         int      `json:"strength" yaml:"strength"`
	QuestionsMatched []string `json:"questionsMatched" yaml:"questionsMatched"`
}

func (s Story) toWire() storyWire {
	return storyWire{
		ID:               s.ID,
		Title:            s.Title,
		Company:          s.Company,
		Role:             s.Role,
		Situation:        s.Situation,
		Task:             s.Task,
		Action:           s.Action,
		Result:           s.Result,
		Metrics:          nonNil(s.Metrics),
		PrimaryLPs:       nonNil(s.PrimaryLPs()),
		SecondaryLPs:     nonNil(s.SecondaryLPs()),
		Strength:         s.Strength,
		QuestionsMatched: nonNil(s.QuestionsMatched),
	}
}

func (w storyWire) toStory() Story {
	return Story{
		ID:               w.ID,
		Title:            w.Title,
		Company:          w.Company,
		Role:             w.Role,
		Situation:        w.Situation,
		Task:             w.Task,
		Action:           w.Action,
		Result:           w.Result,
		Metrics:          nonNil(w.Metrics),
		LPs:              NewLPAssignments(w.PrimaryLPs, w.SecondaryLPs),
		Strength:         w.Strength,
		QuestionsMatched: nonNil(w.QuestionsMatched),
	}
}

// MarshalJSON encodes the story with primaryLPs and secondaryLPs arrays.
func (s Story) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toWire())
}

// UnmarshalJSON decodes a story. An LP listed on both sides is kept as primary.
func (s *Story) UnmarshalJSON(data []byte) error {
	var w storyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = w.toStory()
	return nil
}

// MarshalYAML encodes the story for story bank files.
func (s Story) MarshalYAML() (interface{}, error) {
	return s.toWire(), nil
}

// UnmarshalYAML decodes a story from a story bank file.
func (s *Story) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var w storyWire
	if err := unmarshal(&w); err != nil {
		return err
	}
	*s = w.toStory()
	return nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
