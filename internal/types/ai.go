package types

// EvaluationMode selects the shape of an AI evaluation.
type EvaluationMode string

const (
	// ModeFeedback asks for short coaching feedback.
	ModeFeedback EvaluationMode = "feedback"
	// ModeScorecard asks for a full interviewer scorecard.
	ModeScorecard EvaluationMode = "scorecard"
)

// ParseEvaluationMode maps a query value onto a mode. Empty means feedback.
func ParseEvaluationMode(s string) (EvaluationMode, bool) {
	switch EvaluationMode(s) {
	case "", ModeFeedback:
		return ModeFeedback, true
	case ModeScorecard:
		return ModeScorecard, true
	default:
		return "", false
	}
}

// StoryPayload is the STAR content sent to the AI evaluator.
type StoryPayload struct {
	Situation string   `json:"situation"`
	Task      string   `json:"task"`
	Action    string   `json:"action"`
	Result    string   `json:"result"`
	Metrics   []string `json:"metrics"`
}

// EvaluationRequest is the AI evaluation input.
type EvaluationRequest struct {
	Story        StoryPayload `json:"story"`
	PrimaryLPs   []string     `json:"primaryLPs"`
	SecondaryLPs []string     `json:"secondaryLPs"`
	TargetLevel  string       `json:"targetLevel,omitempty"`
}

// NewEvaluationRequest builds a request from a stored story.
func NewEvaluationRequest(s *Story, targetLevel string) EvaluationRequest {
	return EvaluationRequest{
		Story: StoryPayload{
			Situation: s.Situation,
			Task:      s.Task,
			Action:    s.Action,
			Result:    s.Result,
			Metrics:   nonNil(s.Metrics),
		},
		PrimaryLPs:   nonNil(s.PrimaryLPs()),
		SecondaryLPs: nonNil(s.SecondaryLPs()),
		TargetLevel:  targetLevel,
	}
}

// AIFeedback is the simple AI evaluation shape.
type AIFeedback struct {
	Summary          string   `json:"summary"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	SuggestedMetrics []string `json:"suggestedMetrics"`
	LPFeedback       []string `json:"lpFeedback"`
	InterviewTip     string   `json:"interviewTip"`
}

// ScoreBreakdown splits the 100-point scorecard total.
type ScoreBreakdown struct {
	Structure     int `json:"structure"`
	Ownership     int `json:"ownership"`
	Impact        int `json:"impact"`
	LPAlignment   int `json:"lpAlignment"`
	Communication int `json:"communication"`
}

// Total sums the breakdown.
func (b ScoreBreakdown) Total() int {
	return b.Structure + b.Ownership + b.Impact + b.LPAlignment + b.Communication
}

// ScorecardStar holds 1-4 section scores.
type ScorecardStar struct {
	Situation int `json:"situation"`
	Task      int `json:"task"`
	Action    int `json:"action"`
	Result    int `json:"result"`
}

// IWeRatio is the interviewer's read of personal vs collective framing.
type IWeRatio struct {
	ICount  int    `json:"iCount"`
	WeCount int    `json:"weCount"`
	Verdict string `json:"verdict"`
}

// ScopeAssessment says which level the story reads at.
type ScopeAssessment struct {
	Level     string `json:"level"`
	Rationale string `json:"rationale"`
}

// ScorecardChecklist holds the yes/no checks of a scorecard.
type ScorecardChecklist struct {
	QuantifiedResult   bool `json:"quantifiedResult"`
	PersonalOwnership  bool `json:"personalOwnership"`
	ClearChallenge     bool `json:"clearChallenge"`
	LPDemonstrated     bool `json:"lpDemonstrated"`
	AppropriateLength  bool `json:"appropriateLength"`
	LearningReflection bool `json:"learningReflection"`
}

// RewriteSuggestion proposes new wording for one section.
type RewriteSuggestion struct {
	Section   string `json:"section"`
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
}

// AIScorecard is the comprehensive AI evaluation shape.
type AIScorecard struct {
	Rating             Rating              `json:"rating"`
	TotalScore         int                 `json:"totalScore"`
	Breakdown          ScoreBreakdown      `json:"breakdown"`
	StarScores         ScorecardStar       `json:"starScores"`
	IWeRatio           IWeRatio            `json:"iWeRatio"`
	MetricsQuality     string              `json:"metricsQuality"`
	Scope              ScopeAssessment     `json:"scopeAssessment"`
	Checklist          ScorecardChecklist  `json:"checklist"`
	RedFlags           []string            `json:"redFlags"`
	RewriteSuggestions []RewriteSuggestion `json:"rewriteSuggestions"`
}

// AIEvaluation is an AI evaluation result. Exactly one of Feedback and
// Scorecard is set, matching Mode.
type AIEvaluation struct {
	StoryID   string         `json:"storyId,omitempty"`
	Mode      EvaluationMode `json:"mode"`
	Model     string         `json:"model,omitempty"`
	Feedback  *AIFeedback    `json:"feedback,omitempty"`
	Scorecard *AIScorecard   `json:"scorecard,omitempty"`
	Cached    bool           `json:"cached"`
}

// Confidence is the parser's self-reported certainty.
type Confidence string

// Confidence labels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParsedStory is a best-effort STAR decomposition of free text. Sections the
// model could not find are nil.
type ParsedStory struct {
	Title        string     `json:"title"`
	Situation    *string    `json:"situation"`
	Task         *string    `json:"task"`
	Action       *string    `json:"action"`
	Result       *string    `json:"result"`
	Metrics      []string   `json:"metrics"`
	SuggestedLPs []string   `json:"suggestedLPs"`
	Confidence   Confidence `json:"confidence"`
}

// ToStory turns a parse into a new story, with the suggested LPs as primary.
func (p *ParsedStory) ToStory() Story {
	s := NewStory()
	s.Title = p.Title
	s.Situation = deref(p.Situation)
	s.Task = deref(p.Task)
	s.Action = deref(p.Action)
	s.Result = deref(p.Result)
	s.Metrics = nonNil(p.Metrics)
	s.LPs = NewLPAssignments(p.SuggestedLPs, nil)
	return s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
