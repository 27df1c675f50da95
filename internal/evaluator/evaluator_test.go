package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/star-coach/internal/types"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func strongStory() types.Story {
	return types.Story{
		ID:        "strong",
		Title:     "Checkout latency",
		Situation: "Our payments platform served 4 million customers across 12 countries, and checkout latency had climbed to 9 seconds, causing a 15% drop in conversions during peak season.",
		Task:      "I was responsible for cutting checkout latency below 2 seconds before the holiday freeze.",
		Action: "I analyzed the traces and identified three slow database calls. " +
			"I designed a caching layer, built the prototype, and presented the plan to stakeholders across multiple teams. " +
			"I convinced the payments team to adopt a new process for load testing. " +
			"I led the rollout over 3 weeks and mentored two engineers on the framework. " +
			"I also wrote a long-term roadmap for the checkout strategy and aligned the leadership team on the vision, which changed how we plan every launch going forward across the org.",
		Result:   "Checkout latency dropped 70% within 2 months, lifting conversion and adding $3M in quarterly revenue; the caching framework became the org-wide standard and I learned to validate load assumptions earlier.",
		Metrics:  []string{"70% latency reduction", "$3M quarterly revenue", "2 months"},
		LPs:      types.NewLPAssignments([]string{"dive-deep", "ownership", "think-big"}, []string{"earn-trust"}),
		Strength: 5,
	}
}

func TestEvaluate_EmptyStory(t *testing.T) {
	story := types.Story{Metrics: []string{}}

	res := Evaluate(&story)

	assert.Equal(t, 1.0, res.OverallScore)
	assert.Equal(t, types.RatingNeedsWork, res.OverallRating)
	assert.Empty(t, res.LPAlignment.Strong)
	assert.Empty(t, res.LPAlignment.Weak)
	assert.Empty(t, res.SeniorSignals.Present)
	assert.Equal(t, SignalNames(), res.SeniorSignals.Missing)
	assert.Equal(t, types.StarScores{Situation: 0, Task: 0, Action: 1, Result: 0}, res.StarScores)
	assert.Equal(t, 1, res.MetricQuality)
	assert.Empty(t, res.Strengths)
	assert.Equal(t, []string{
		"Add quantified context to Situation (team size, revenue, users)",
		`Task should emphasize YOUR role - use "I" not "we"`,
		"Use more specific action verbs: built, led, analyzed, convinced, launched",
	}, res.Improvements)
	assert.Equal(t, []string{
		"Action section is too short - expand with specific steps YOU took",
		"Result has no metrics - add specific numbers (%, $, users, time saved)",
		"No quantified metrics - this is critical for senior roles",
		"Add senior-level signals: cross-functional impact, strategic thinking, scale",
	}, res.Warnings)
}

func TestEvaluate_NilStory(t *testing.T) {
	res := Evaluate(nil)
	assert.Equal(t, 1.0, res.OverallScore)
	assert.Equal(t, types.RatingNeedsWork, res.OverallRating)
}

func TestEvaluate_StrongStory(t *testing.T) {
	story := strongStory()
	require.GreaterOrEqual(t, wordCount(story.Action), 80)

	res := Evaluate(&story)

	assert.Equal(t, types.StarScores{Situation: 4, Task: 4, Action: 4, Result: 4}, res.StarScores)
	assert.Equal(t, 3, res.MetricQuality)
	assert.Equal(t, SignalNames(), res.SeniorSignals.Present)
	assert.Empty(t, res.SeniorSignals.Missing)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 10.0, res.OverallScore)
	assert.Equal(t, types.RatingStrongHire, res.OverallRating)

	// think-big has no keywords and is skipped
	assert.Equal(t, []string{"Dive Deep"}, res.LPAlignment.Strong)
	assert.Equal(t, []string{"Ownership"}, res.LPAlignment.Weak)
	assert.Equal(t, []string{"Story doesn't clearly demonstrate: Ownership. Add relevant keywords/actions."}, res.Improvements)

	assert.Contains(t, res.Strengths, "Situation is appropriately concise")
	assert.Contains(t, res.Strengths, "Action section has good depth")
	assert.Contains(t, res.Strengths, "Strong action verbs demonstrate initiative")
	assert.Contains(t, res.Strengths, "Strong senior-level signals present")
}

func TestEvaluate_ScenarioA_SituationWithNumbers(t *testing.T) {
	story := types.Story{
		Situation: "Owned checkout flow processing $5M monthly serving 2 million users across 10 markets over 6 months.",
	}
	require.Equal(t, 16, wordCount(story.Situation))

	res := Evaluate(&story)

	// 16 words sits in the short band
	assert.Equal(t, 2.0, res.StarScores.Situation)
	assert.Contains(t, res.Strengths, "Situation includes scale/numbers")
	assert.Contains(t, res.Improvements, "Situation needs more context - add scale, stakes, or team size")

	story.Situation += " The team of 8 engineers owned it end to end."
	require.GreaterOrEqual(t, wordCount(story.Situation), 20)
	res = Evaluate(&story)
	assert.Equal(t, 4.0, res.StarScores.Situation)
	assert.Contains(t, res.Strengths, "Situation is appropriately concise")
}

func TestEvaluate_ScenarioB_FirstPersonAction(t *testing.T) {
	story := types.Story{
		Action: "I built the dashboard. I led the rollout. I presented to leadership.",
	}

	res := Evaluate(&story)

	assert.Equal(t, 2.0, res.StarScores.Action)
	assert.Contains(t, res.Strengths, `Good use of "I" - clear personal contribution`)
	assert.Contains(t, res.Strengths, "Strong action verbs demonstrate initiative")
	for _, w := range res.Warnings {
		assert.NotContains(t, w, `"We" appears`)
	}
}

func TestEvaluate_ScenarioC_WeDominates(t *testing.T) {
	story := types.Story{
		Action: "We decided to launch the feature and we measured results",
	}

	res := Evaluate(&story)

	assert.Equal(t, 1.0, res.StarScores.Action)
	assert.Contains(t, res.Warnings,
		`"We" appears 2x vs "I" 0x - replace "we" with specific actions YOU took`)
	assert.Contains(t, res.Improvements, "Use more specific action verbs: built, led, analyzed, convinced, launched")
}

func TestEvaluate_ActionTie(t *testing.T) {
	story := types.Story{Action: "I proposed it and we agreed"}

	res := Evaluate(&story)

	assert.Equal(t, 1.0, res.StarScores.Action)
	assert.NotContains(t, res.Strengths, `Good use of "I" - clear personal contribution`)
	for _, w := range res.Warnings {
		assert.NotContains(t, w, `"We" appears`)
	}
}

func TestEvaluate_ScenarioD_ResultSignals(t *testing.T) {
	story := types.Story{
		Result: "Revenue increased 23%, adding $2M in annual recurring revenue over 2 quarters.",
	}

	res := Evaluate(&story)

	// under 30 words: 1 + 1 + 1 + 0.5
	assert.Equal(t, 3.5, res.StarScores.Result)
	assert.Contains(t, res.Strengths, "Result includes percentage metrics")
	assert.Contains(t, res.Strengths, "Result includes revenue/cost impact")
	assert.Contains(t, res.Improvements, "Result section needs more detail on outcomes")
	assert.NotContains(t, res.Warnings, "Result has no metrics - add specific numbers (%, $, users, time saved)")

	story.Result += " " + words(20)
	res = Evaluate(&story)
	assert.Equal(t, 4.0, res.StarScores.Result)
}

func TestEvaluate_ScenarioE_MetricQuality(t *testing.T) {
	story := types.Story{
		Metrics: []string{"12% improvement", "", "no numbers here"},
	}

	res := Evaluate(&story)

	assert.Equal(t, 2, res.MetricQuality)
	assert.Contains(t, res.Improvements, "Add more specific metrics (aim for 3+)")
	assert.NotContains(t, res.Strengths, "Strong quantified metrics")
}

func TestEvaluate_WordBands(t *testing.T) {
	tests := []struct {
		name  string
		story types.Story
		get   func(types.StarScores) float64
		want  float64
	}{
		{"situation 19", types.Story{Situation: words(19)}, func(s types.StarScores) float64 { return s.Situation }, 1},
		{"situation 20", types.Story{Situation: words(20)}, func(s types.StarScores) float64 { return s.Situation }, 3},
		{"situation 60", types.Story{Situation: words(60)}, func(s types.StarScores) float64 { return s.Situation }, 3},
		{"situation 61", types.Story{Situation: words(61)}, func(s types.StarScores) float64 { return s.Situation }, 2},
		{"task 9", types.Story{Task: words(9)}, func(s types.StarScores) float64 { return s.Task }, 2},
		{"task 10", types.Story{Task: words(10)}, func(s types.StarScores) float64 { return s.Task }, 3},
		{"task 40", types.Story{Task: words(40)}, func(s types.StarScores) float64 { return s.Task }, 3},
		{"task 41", types.Story{Task: words(41)}, func(s types.StarScores) float64 { return s.Task }, 2},
		{"action 0", types.Story{}, func(s types.StarScores) float64 { return s.Action }, 1},
		{"action 39", types.Story{Action: words(39)}, func(s types.StarScores) float64 { return s.Action }, 1},
		{"action 40", types.Story{Action: words(40)}, func(s types.StarScores) float64 { return s.Action }, 2},
		{"action 79", types.Story{Action: words(79)}, func(s types.StarScores) float64 { return s.Action }, 2},
		{"action 80", types.Story{Action: words(80)}, func(s types.StarScores) float64 { return s.Action }, 3},
		{"result 29", types.Story{Result: words(29)}, func(s types.StarScores) float64 { return s.Result }, 1},
		{"result 30", types.Story{Result: words(30)}, func(s types.StarScores) float64 { return s.Result }, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(&tt.story)
			assert.Equal(t, tt.want, tt.get(res.StarScores))
		})
	}
}

func TestEvaluate_SituationTooLongNote(t *testing.T) {
	story := types.Story{Situation: words(70)}
	res := Evaluate(&story)
	assert.Contains(t, res.Improvements, "Situation is too long - aim for 20-40 words")
}

func TestEvaluate_LPAlignmentPrimaryOnly(t *testing.T) {
	story := types.Story{
		Action: "I analyzed customer data",
		LPs:    types.NewLPAssignments([]string{"customer-obsession", "not-an-lp"}, []string{"frugality"}),
	}

	res := Evaluate(&story)

	assert.Equal(t, []string{"Customer Obsession"}, res.LPAlignment.Strong)
	assert.Empty(t, res.LPAlignment.Weak)
	for _, imp := range res.Improvements {
		assert.NotContains(t, imp, "doesn't clearly demonstrate")
	}
}

func TestEvaluate_LPAlignmentWeakJoined(t *testing.T) {
	story := types.Story{
		Action: "I did things",
		LPs:    types.NewLPAssignments([]string{"frugality", "backbone"}, nil),
	}

	res := Evaluate(&story)

	assert.Equal(t, []string{"Frugality", "Have Backbone; Disagree and Commit"}, res.LPAlignment.Weak)
	assert.Contains(t, res.Improvements,
		"Story doesn't clearly demonstrate: Frugality, Have Backbone; Disagree and Commit. Add relevant keywords/actions.")
}

func TestEvaluate_SeniorSignalsFromResult(t *testing.T) {
	story := types.Story{
		Result: "We shipped a global framework and I learned a lot",
	}

	res := Evaluate(&story)

	assert.Equal(t, []string{"scale", "mechanism", "learning"}, res.SeniorSignals.Present)
	assert.Len(t, res.SeniorSignals.Missing, 4)
	assert.NotContains(t, res.Warnings, "Add senior-level signals: cross-functional impact, strategic thinking, scale")
	assert.NotContains(t, res.Strengths, "Strong senior-level signals present")
}

func TestEvaluate_WarningsLowerScore(t *testing.T) {
	base := strongStory()
	withWe := strongStory()
	withWe.Action = strings.ReplaceAll(withWe.Action, "I ", "we ")

	a := Evaluate(&base)
	b := Evaluate(&withWe)

	assert.Greater(t, len(b.Warnings), len(a.Warnings))
	assert.Less(t, b.StarScores.Action, a.StarScores.Action)
}

func TestEvaluate_Bounds(t *testing.T) {
	stories := []types.Story{
		{},
		strongStory(),
		{Situation: words(500), Task: words(500), Action: words(500), Result: words(500)},
		{Result: "100% 200% $5M 3 years 4 million"},
		{Action: strings.Repeat("we ", 100)},
		{Metrics: []string{"1", "2", "3", "4", "5"}},
	}

	for i := range stories {
		res := Evaluate(&stories[i])
		assert.GreaterOrEqual(t, res.OverallScore, 1.0)
		assert.LessOrEqual(t, res.OverallScore, 10.0)
		for _, v := range []float64{res.StarScores.Situation, res.StarScores.Task, res.StarScores.Action, res.StarScores.Result} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 4.0)
		}
		assert.GreaterOrEqual(t, res.MetricQuality, 1)
		assert.LessOrEqual(t, res.MetricQuality, 3)
		assert.Len(t, append(res.SeniorSignals.Present, res.SeniorSignals.Missing...), 7)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	story := strongStory()
	before := strongStory()

	first := Evaluate(&story)
	second := Evaluate(&story)

	assert.Equal(t, first, second)
	assert.Equal(t, before, story)
}

func TestEvaluateAll_PreservesOrder(t *testing.T) {
	stories := []types.Story{strongStory(), {}, {Metrics: []string{"12% improvement"}}}

	results := EvaluateAll(stories)

	require.Len(t, results, 3)
	for i := range stories {
		assert.Equal(t, Evaluate(&stories[i]), results[i])
	}
}

func TestEvaluateAll_Empty(t *testing.T) {
	assert.Empty(t, EvaluateAll(nil))
}
