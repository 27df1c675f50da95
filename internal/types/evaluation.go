package types

// Rating is the four-tier verdict derived from an overall score.
type Rating string

// Ratings, highest first.
const (
	RatingStrongHire Rating = "Strong Hire"
	RatingHire       Rating = "Hire"
	RatingBorderline Rating = "Borderline"
	RatingNeedsWork  Rating = "Needs Work"
)

// StarScores holds the per-section sub-scores.
type StarScores struct {
	Situation float64 `json:"situation"`
	Task      float64 `json:"task"`
	Action    float64 `json:"action"`
	Result    float64 `json:"result"`
}

// Total sums the four section scores.
func (s StarScores) Total() float64 {
	return s.Situation + s.Task + s.Action + s.Result
}

// SeniorSignals partitions the senior signal vocabulary.
type SeniorSignals struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// LPAlignment partitions a story's primary LPs by display name.
type LPAlignment struct {
	Strong []string `json:"strong"`
	Weak   []string `json:"weak"`
}

// StoryEvaluationResult is the output of the rule-based evaluator. It is
// recomputed on every call and never persisted.
type StoryEvaluationResult struct {
	OverallScore  float64       `json:"overallScore"`
	OverallRating Rating        `json:"overallRating"`
	StarScores    StarScores    `json:"starScores"`
	Strengths     []string      `json:"strengths"`
	Improvements  []string      `json:"improvements"`
	Warnings      []string      `json:"warnings"`
	SeniorSignals SeniorSignals `json:"seniorSignals"`
	MetricQuality int           `json:"metricQuality"`
	LPAlignment   LPAlignment   `json:"lpAlignment"`
}

// RatingFor maps an overall score onto its tier.
func RatingFor(score float64) Rating {
	switch {
	case score >= 8:
		return RatingStrongHire
	case score >= 6:
		return RatingHire
	case score >= 4:
		return RatingBorderline
	default:
		return RatingNeedsWork
	}
}
