package storybank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/star-coach/internal/types"
)

const yamlBank = `stories:
  - id: checkout
    title: Checkout latency
    company: Acme
    situation: Checkout took 9 seconds for 4 million users.
    action: I analyzed the traces and built a cache.
    result: Latency dropped 70%.
    metrics:
      - 70% faster
    primaryLPs: [dive-deep, ownership]
    secondaryLPs: [ownership, frugality]
    strength: 4
    questionsMatched: [q14]
  - title: No id
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "bank.yaml", yamlBank)

	stories, err := Load(path)
	require.NoError(t, err)
	require.Len(t, stories, 2)

	s := stories[0]
	assert.Equal(t, "checkout", s.ID)
	assert.Equal(t, "Acme", s.Company)
	assert.Equal(t, []string{"dive-deep", "ownership"}, s.PrimaryLPs())
	// ownership is listed on both sides; primary wins
	assert.Equal(t, []string{"frugality"}, s.SecondaryLPs())
	assert.Equal(t, 4, s.Strength)
	assert.Equal(t, []string{"q14"}, s.QuestionsMatched)

	assert.NotEmpty(t, stories[1].ID)
	assert.Equal(t, types.DefaultStrength, stories[1].Strength)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "bank.json", `{"stories":[{"id":"a","title":"A","primaryLPs":["frugality"],"strength":2}]}`)

	stories, err := Load(path)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, []string{"frugality"}, stories[0].PrimaryLPs())
	assert.Equal(t, 2, stories[0].Strength)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"bad extension", func(t *testing.T) string { return writeFile(t, "bank.txt", "stories: []") }},
		{"bad json", func(t *testing.T) string { return writeFile(t, "bank.json", "{not json") }},
		{"bad yaml", func(t *testing.T) string { return writeFile(t, "bank.yml", "stories: [unclosed") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			require.Error(t, err)
			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr))
			assert.Contains(t, err.Error(), "load error")
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	stories := []types.Story{
		{
			ID:       "x",
			Title:    "Round trip",
			Action:   "I led it",
			Metrics:  []string{"3 weeks"},
			LPs:      types.NewLPAssignments([]string{"ownership"}, []string{"bias-action"}),
			Strength: 5,
		},
	}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, stories))

			loaded, err := Load(path)
			require.NoError(t, err)
			require.Len(t, loaded, 1)
			assert.Equal(t, "Round trip", loaded[0].Title)
			assert.Equal(t, []string{"ownership"}, loaded[0].PrimaryLPs())
			assert.Equal(t, []string{"bias-action"}, loaded[0].SecondaryLPs())
			assert.Equal(t, []string{"3 weeks"}, loaded[0].Metrics)
		})
	}
}

func TestSave_BadExtension(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "out.csv"), nil)
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	stories := []types.Story{{ID: "a"}, {ID: "b", Title: "B"}}
	assert.Equal(t, "B", Find(stories, "b").Title)
	assert.Nil(t, Find(stories, "c"))
}

func TestSamples(t *testing.T) {
	stories, err := Samples()
	require.NoError(t, err)
	require.Len(t, stories, 2)

	for _, s := range stories {
		assert.NoError(t, s.Validate(), s.ID)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.PrimaryLPs())
		for _, q := range s.QuestionsMatched {
			_, ok := types.GetQuestion(q)
			assert.True(t, ok, q)
		}
	}
	assert.Equal(t, []string{"are-right", "learn-curious", "dive-deep"}, stories[0].PrimaryLPs())

	// callers get their own copy
	stories[0].Title = "changed"
	again, err := Samples()
	require.NoError(t, err)
	assert.Equal(t, "Checkout Hypothesis Proven Wrong", again[0].Title)
}
