// Package evaluator scores STAR stories with fixed keyword and length rules.
// Evaluation is pure: the same story always yields the same result.
package evaluator

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/star-coach/internal/types"
)

const (
	maxStarTotal     = 16.0
	maxResultScore   = 4.0
	seniorStrongMin  = 4
	seniorWarnBelow  = 2
	strongVerbMin    = 3
	strongMetricsMin = 3
)

type noteKind int

const (
	noNote noteKind = iota
	strengthNote
	improvementNote
	warningNote
)

type note struct {
	kind noteKind
	text string
}

func strength(text string) note    { return note{strengthNote, text} }
func improvement(text string) note { return note{improvementNote, text} }
func warning(text string) note     { return note{warningNote, text} }

// band scores a word count in [minWords, maxWords].
type band struct {
	minWords int
	maxWords int
	score    float64
	note     note
}

const unbounded = math.MaxInt

var (
	situationBands = []band{
		{20, 60, 3, strength("Situation is appropriately concise")},
		{61, unbounded, 2, improvement("Situation is too long - aim for 20-40 words")},
		{1, 19, 1, improvement("Situation needs more context - add scale, stakes, or team size")},
	}
	taskBands = []band{
		{10, 40, 3, note{}},
		{1, unbounded, 2, improvement("Task should clearly state YOUR specific responsibility (10-30 words)")},
	}
	// a zero-word action falls into the last band, like any short action
	actionBands = []band{
		{80, unbounded, 3, strength("Action section has good depth")},
		{40, 79, 2, improvement("Action section needs more detail - should be 60-70% of your answer")},
		{0, unbounded, 1, warning("Action section is too short - expand with specific steps YOU took")},
	}
	resultBands = []band{
		{30, unbounded, 2, note{}},
		{1, 29, 1, improvement("Result section needs more detail on outcomes")},
	}
)

// evaluation accumulates findings in the order they are produced.
type evaluation struct {
	res types.StoryEvaluationResult
}

func (e *evaluation) record(n note) {
	switch n.kind {
	case strengthNote:
		e.res.Strengths = append(e.res.Strengths, n.text)
	case improvementNote:
		e.res.Improvements = append(e.res.Improvements, n.text)
	case warningNote:
		e.res.Warnings = append(e.res.Warnings, n.text)
	case noNote:
	}
}

// scoreBand returns the score of the first band containing words, or 0.
func (e *evaluation) scoreBand(words int, bands []band) float64 {
	for _, b := range bands {
		if words >= b.minWords && words <= b.maxWords {
			e.record(b.note)
			return b.score
		}
	}
	return 0
}

// bonus records hit and returns points when ok, otherwise records miss.
func (e *evaluation) bonus(ok bool, points float64, hit, miss note) float64 {
	if ok {
		e.record(hit)
		return points
	}
	e.record(miss)
	return 0
}

// Evaluate scores a story. It never fails: missing text lowers the score.
// A nil story is treated as empty.
func Evaluate(story *types.Story) types.StoryEvaluationResult {
	if story == nil {
		story = &types.Story{}
	}

	e := &evaluation{res: types.StoryEvaluationResult{
		Strengths:     []string{},
		Improvements:  []string{},
		Warnings:      []string{},
		SeniorSignals: types.SeniorSignals{Present: []string{}, Missing: []string{}},
		LPAlignment:   types.LPAlignment{Strong: []string{}, Weak: []string{}},
	}}

	e.res.StarScores.Situation = e.scoreSituation(story.Situation)
	e.res.StarScores.Task = e.scoreTask(story.Task)
	e.res.StarScores.Action = e.scoreAction(story.Action)
	e.res.StarScores.Result = e.scoreResult(story.Result)
	e.res.MetricQuality = e.scoreMetrics(story.Metrics)
	e.detectSeniorSignals(story.Action, story.Result)
	e.checkLPAlignment(story.PrimaryLPs(), story.Action, story.Result)

	raw := (e.res.StarScores.Total()/maxStarTotal)*6 +
		0.5*float64(len(e.res.SeniorSignals.Present)) +
		float64(e.res.MetricQuality) -
		0.5*float64(len(e.res.Warnings))
	e.res.OverallScore = math.Min(10, math.Max(1, raw))
	e.res.OverallRating = types.RatingFor(e.res.OverallScore)

	return e.res
}

func (e *evaluation) scoreSituation(text string) float64 {
	score := e.scoreBand(wordCount(text), situationBands)
	return score + e.bonus(hasNumbers(text), 1,
		strength("Situation includes scale/numbers"),
		improvement("Add quantified context to Situation (team size, revenue, users)"))
}

func (e *evaluation) scoreTask(text string) float64 {
	score := e.scoreBand(wordCount(text), taskBands)
	return score + e.bonus(usesI(text), 1,
		strength("Task clearly shows personal ownership"),
		improvement(`Task should emphasize YOUR role - use "I" not "we"`))
}

func (e *evaluation) scoreAction(text string) float64 {
	iCount := countMatches(firstPersonI, text)
	weCount := countMatches(firstPersonWe, text)

	score := e.scoreBand(wordCount(text), actionBands)

	switch {
	case iCount > weCount:
		score += e.bonus(true, 1, strength(`Good use of "I" - clear personal contribution`), note{})
	case weCount > iCount:
		e.record(warning(fmt.Sprintf(`"We" appears %dx vs "I" %dx - replace "we" with specific actions YOU took`, weCount, iCount)))
	}

	// verbs are diagnostic only
	e.bonus(countMatches(actionVerbPattern, text) >= strongVerbMin, 0,
		strength("Strong action verbs demonstrate initiative"),
		improvement("Use more specific action verbs: built, led, analyzed, convinced, launched"))

	return score
}

func (e *evaluation) scoreResult(text string) float64 {
	score := e.scoreBand(wordCount(text), resultBands)
	score += e.bonus(hasPercentage(text), 1, strength("Result includes percentage metrics"), note{})
	score += e.bonus(hasDollarAmount(text), 1, strength("Result includes revenue/cost impact"), note{})
	score += e.bonus(hasTimeframe(text), 0.5, note{}, note{})

	if !hasNumbers(text) {
		e.record(warning("Result has no metrics - add specific numbers (%, $, users, time saved)"))
	}
	return math.Min(maxResultScore, score)
}

func (e *evaluation) scoreMetrics(metrics []string) int {
	quantified := 0
	for _, m := range metrics {
		if m != "" && hasNumbers(m) {
			quantified++
		}
	}

	switch {
	case quantified >= strongMetricsMin:
		e.record(strength("Strong quantified metrics"))
		return 3
	case quantified >= 1:
		e.record(improvement("Add more specific metrics (aim for 3+)"))
		return 2
	default:
		e.record(warning("No quantified metrics - this is critical for senior roles"))
		return 1
	}
}

func (e *evaluation) detectSeniorSignals(action, result string) {
	for _, s := range seniorSignals {
		if s.pattern.MatchString(action) || s.pattern.MatchString(result) {
			e.res.SeniorSignals.Present = append(e.res.SeniorSignals.Present, s.name)
		} else {
			e.res.SeniorSignals.Missing = append(e.res.SeniorSignals.Missing, s.name)
		}
	}

	switch present := len(e.res.SeniorSignals.Present); {
	case present >= seniorStrongMin:
		e.record(strength("Strong senior-level signals present"))
	case present < seniorWarnBelow:
		e.record(warning("Add senior-level signals: cross-functional impact, strategic thinking, scale"))
	}
}

// checkLPAlignment judges primary LPs only. LPs without keywords, or outside the
// catalog, are skipped.
func (e *evaluation) checkLPAlignment(primary []string, action, result string) {
	for _, id := range primary {
		lp, ok := types.GetLP(id)
		if !ok {
			continue
		}
		re, ok := lpKeywords[id]
		if !ok {
			continue
		}
		if re.MatchString(action) || re.MatchString(result) {
			e.res.LPAlignment.Strong = append(e.res.LPAlignment.Strong, lp.Name)
		} else {
			e.res.LPAlignment.Weak = append(e.res.LPAlignment.Weak, lp.Name)
		}
	}

	if len(e.res.LPAlignment.Weak) > 0 {
		e.record(improvement(fmt.Sprintf("Story doesn't clearly demonstrate: %s. Add relevant keywords/actions.",
			strings.Join(e.res.LPAlignment.Weak, ", "))))
	}
}

// EvaluateAll scores stories concurrently. Results keep the input order.
func EvaluateAll(stories []types.Story) []types.StoryEvaluationResult {
	results := make([]types.StoryEvaluationResult, len(stories))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range stories {
		i := i
		g.Go(func() error {
			results[i] = Evaluate(&stories[i])
			return nil
		})
	}
	_ = g.Wait() // Evaluate cannot fail

	return results
}
