//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewStory_Defaults(t *testing.T) {
	s := NewStory()

	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultStrength, s.Strength)
	assert.Empty(t, s.Metrics)
	assert.NotNil(t, s.Metrics)
	assert.Empty(t, s.PrimaryLPs())
	assert.Empty(t, s.SecondaryLPs())
}

func TestNewStory_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewStory().ID, NewStory().ID)
}

func TestStory_ToggleLP(t *testing.T) {
	s := NewStory()

	s.ToggleLP("ownership", LPRolePrimary)
	assert.Equal(t, []string{"ownership"}, s.PrimaryLPs())

	// moving to secondary removes it from primary
	s.ToggleLP("ownership", LPRoleSecondary)
	assert.Empty(t, s.PrimaryLPs())
	assert.Equal(t, []string{"ownership"}, s.SecondaryLPs())

	// toggling the same side again clears it
	s.ToggleLP("ownership", LPRoleSecondary)
	assert.Empty(t, s.SecondaryLPs())
	assert.Empty(t, s.AllLPs())
}

func TestStory_ToggleLP_KeepsSidesDisjoint(t *testing.T) {
	ids := []string{"ownership", "dive-deep", "frugality", "ownership", "earn-trust", "dive-deep"}
	roles := []LPRole{LPRolePrimary, LPRoleSecondary}

	s := NewStory()
	for i := 0; i < 50; i++ {
		s.ToggleLP(ids[i%len(ids)], roles[(i/3)%2])

		seen := map[string]bool{}
		for _, id := range s.PrimaryLPs() {
			seen[id] = true
		}
		for _, id := range s.SecondaryLPs() {
			assert.False(t, seen[id], "%s is both primary and secondary after step %d", id, i)
		}
	}
}

func TestStory_ToggleLP_PreservesOrder(t *testing.T) {
	s := NewStory()
	s.ToggleLP("dive-deep", LPRolePrimary)
	s.ToggleLP("ownership", LPRolePrimary)
	s.ToggleLP("frugality", LPRoleSecondary)

	assert.Equal(t, []string{"dive-deep", "ownership"}, s.PrimaryLPs())
	assert.Equal(t, []string{"dive-deep", "ownership", "frugality"}, s.AllLPs())
}

func TestStory_JSONMarshaling(t *testing.T) {
	s := Story{
		ID:        "story-1",
		Title:     "Checkout rewrite",
		Situation: "Checkout was slow",
		Metrics:   []string{"30% faster"},
		LPs:       NewLPAssignments([]string{"ownership"}, []string{"dive-deep"}),
		Strength:  4,
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"primaryLPs":["ownership"]`)
	assert.Contains(t, string(data), `"secondaryLPs":["dive-deep"]`)
	assert.Contains(t, string(data), `"questionsMatched":[]`)
	assert.NotContains(t, string(data), `"LPs"`)
}

func TestStory_JSONUnmarshaling_PrimaryWins(t *testing.T) {
	input := `{
		"id": "s1",
		"title": "Overlap",
		"primaryLPs": ["ownership", "dive-deep"],
		"secondaryLPs": ["dive-deep", "frugality"],
		"strength": 2
	}`

	var s Story
	require.NoError(t, json.Unmarshal([]byte(input), &s))
	assert.Equal(t, []string{"ownership", "dive-deep"}, s.PrimaryLPs())
	assert.Equal(t, []string{"frugality"}, s.SecondaryLPs())
	assert.Equal(t, 2, s.Strength)
	assert.NotNil(t, s.Metrics)
}

func TestStory_JSONUnmarshaling_InvalidJSON(t *testing.T) {
	var s Story
	err := json.Unmarshal([]byte(`{"title": 5}`), &s)
	assert.Error(t, err)
}

func TestStory_YAMLRoundTrip(t *testing.T) {
	s := Story{
		ID:               "s2",
		Title:            "Migration",
		Action:           "I led the migration.",
		Metrics:          []string{"0 downtime"},
		LPs:              NewLPAssignments([]string{"deliver-results"}, []string{"ownership"}),
		Strength:         5,
		QuestionsMatched: []string{"q12"},
	}

	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "primaryLPs:")

	var out Story
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, s.ID, out.ID)
	assert.Equal(t, s.Action, out.Action)
	assert.Equal(t, s.PrimaryLPs(), out.PrimaryLPs())
	assert.Equal(t, s.SecondaryLPs(), out.SecondaryLPs())
	assert.Equal(t, s.QuestionsMatched, out.QuestionsMatched)
}

func TestStory_HasQuestion(t *testing.T) {
	s := Story{QuestionsMatched: []string{"q1", "q7"}}
	assert.True(t, s.HasQuestion("q7"))
	assert.False(t, s.HasQuestion("q2"))
}

func TestLPAssignments_With(t *testing.T) {
	a := NewLPAssignments([]string{"ownership"}, []string{"frugality"})

	b := a.With("frugality", LPRolePrimary)
	assert.Equal(t, []string{"ownership", "frugality"}, b.IDs(LPRolePrimary))
	// original untouched
	assert.Equal(t, LPRoleSecondary, a.RoleOf("frugality"))

	c := b.With("frugality", LPRoleNone)
	assert.Equal(t, LPRoleNone, c.RoleOf("frugality"))
	assert.Len(t, c, 1)
}

func TestLPAssignments_WithRoleChangeMovesToEnd(t *testing.T) {
	var a LPAssignments
	a = a.With("ownership", LPRoleSecondary)
	a = a.With("dive-deep", LPRolePrimary)
	a = a.With("ownership", LPRolePrimary)

	assert.Equal(t, []string{"dive-deep", "ownership"}, a.IDs(LPRolePrimary))
	assert.Empty(t, a.IDs(LPRoleSecondary))

	// same role again is a no-op
	b := a.With("dive-deep", LPRolePrimary)
	assert.Equal(t, []string{"dive-deep", "ownership"}, b.IDs(LPRolePrimary))
}

func TestLPRole_String(t *testing.T) {
	assert.Equal(t, "primary", LPRolePrimary.String())
	assert.Equal(t, "secondary", LPRoleSecondary.String())
	assert.Equal(t, "none", LPRoleNone.String())
}

func TestParsedStory_ToStory(t *testing.T) {
	situation := "Legacy billing was failing"
	p := ParsedStory{
		Title:        "Billing fix",
		Situation:    &situation,
		Metrics:      []string{"99.9% uptime"},
		SuggestedLPs: []string{"dive-deep"},
		Confidence:   ConfidenceMedium,
	}

	s := p.ToStory()
	assert.Equal(t, "Billing fix", s.Title)
	assert.Equal(t, situation, s.Situation)
	assert.Equal(t, "", s.Task)
	assert.Equal(t, []string{"dive-deep"}, s.PrimaryLPs())
	assert.Equal(t, DefaultStrength, s.Strength)
}

func TestNewEvaluationRequest(t *testing.T) {
	s := Story{
		Action: "I built it",
		LPs:    NewLPAssignments([]string{"ownership"}, nil),
	}

	req := NewEvaluationRequest(&s, "senior")
	assert.Equal(t, "I built it", req.Story.Action)
	assert.Equal(t, []string{"ownership"}, req.PrimaryLPs)
	assert.Equal(t, []string{}, req.SecondaryLPs)
	assert.Equal(t, []string{}, req.Story.Metrics)
	assert.Equal(t, "senior", req.TargetLevel)
}

func TestParseEvaluationMode(t *testing.T) {
	m, ok := ParseEvaluationMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeFeedback, m)

	m, ok = ParseEvaluationMode("scorecard")
	assert.True(t, ok)
	assert.Equal(t, ModeScorecard, m)

	_, ok = ParseEvaluationMode("essay")
	assert.False(t, ok)
}
