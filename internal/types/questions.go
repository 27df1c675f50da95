package types

// Question is a common behavioural interview question and the LPs it tests.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	PrimaryLP    string   `json:"primaryLP"`
	SecondaryLPs []string `json:"secondaryLPs"`
	Category     string   `json:"category"`
}

// CategoryAll disables category filtering.
const CategoryAll = "All"

var questions = []Question{
	{ID: "q1", Text: "Tell me about a time you were wrong", PrimaryLP: "are-right", SecondaryLPs: []string{"earn-trust", "learn-curious"}, Category: "Failure & Learning"},
	{ID: "q2", Text: "Describe a time you went above and beyond for a customer", PrimaryLP: "customer-obsession", SecondaryLPs: []string{"ownership", "deliver-results"}, Category: "Customer Focus"},
	{ID: "q3", Text: "Tell me about a time you had to make a decision with incomplete information", PrimaryLP: "bias-action", SecondaryLPs: []string{"are-right", "ownership"}, Category: "Decision Making"},
	{ID: "q4", Text: "Describe a time you disagreed with your manager", PrimaryLP: "backbone", SecondaryLPs: []string{"earn-trust", "are-right"}, Category: "Conflict & Influence"},
	{ID: "q5", Text: "Tell me about your most innovative project", PrimaryLP: "invent-simplify", SecondaryLPs: []string{"think-big", "customer-obsession"}, Category: "Innovation"},
	{ID: "q6", Text: "Describe a time you failed to meet a deadline", PrimaryLP: "deliver-results", SecondaryLPs: []string{"ownership", "earn-trust"}, Category: "Failure & Learning"},
	{ID: "q7", Text: "Tell me about a time you had to influence without authority", PrimaryLP: "earn-trust", SecondaryLPs: []string{"ownership", "backbone"}, Category: "Conflict & Influence"},
	{ID: "q8", Text: "Describe a time you simplified a complex process", PrimaryLP: "invent-simplify", SecondaryLPs: []string{"customer-obsession", "frugality"}, Category: "Innovation"},
	{ID: "q9", Text: "Tell me about developing someone on your team", PrimaryLP: "hire-develop", SecondaryLPs: []string{"earn-trust", "best-employer"}, Category: "Leadership & Team"},
	{ID: "q10", Text: "Describe a time you had to deliver with limited resources", PrimaryLP: "frugality", SecondaryLPs: []string{"deliver-results", "invent-simplify"}, Category: "Execution"},
	{ID: "q11", Text: "Tell me about a time you raised the bar", PrimaryLP: "highest-standards", SecondaryLPs: []string{"customer-obsession", "deliver-results"}, Category: "Quality & Standards"},
	{ID: "q12", Text: "Describe your biggest career achievement", PrimaryLP: "deliver-results", SecondaryLPs: []string{"ownership", "think-big"}, Category: "Execution"},
	{ID: "q13", Text: "Tell me about a time you took ownership outside your role", PrimaryLP: "ownership", SecondaryLPs: []string{"customer-obsession", "bias-action"}, Category: "Ownership"},
	{ID: "q14", Text: "Describe a time you used data to make a decision", PrimaryLP: "dive-deep", SecondaryLPs: []string{"are-right", "deliver-results"}, Category: "Decision Making"},
	{ID: "q15", Text: "Tell me about adapting to a new environment or role", PrimaryLP: "learn-curious", SecondaryLPs: []string{"earn-trust", "ownership"}, Category: "Growth & Adaptability"},
	{ID: "q16", Text: "Describe a time you had to earn trust with a skeptical stakeholder", PrimaryLP: "earn-trust", SecondaryLPs: []string{"customer-obsession", "backbone"}, Category: "Conflict & Influence"},
	{ID: "q17", Text: "Tell me about a bold bet or risk you took", PrimaryLP: "think-big", SecondaryLPs: []string{"bias-action", "ownership"}, Category: "Innovation"},
	{ID: "q18", Text: "Describe handling conflicting priorities from stakeholders", PrimaryLP: "backbone", SecondaryLPs: []string{"customer-obsession", "are-right"}, Category: "Conflict & Influence"},
	{ID: "q19", Text: "Tell me about a time you learned something that changed your approach", PrimaryLP: "learn-curious", SecondaryLPs: []string{"are-right", "invent-simplify"}, Category: "Growth & Adaptability"},
	{ID: "q20", Text: "Describe building something from scratch", PrimaryLP: "ownership", SecondaryLPs: []string{"invent-simplify", "deliver-results"}, Category: "Execution"},
	{ID: "q21", Text: "Tell me about catching a critical detail others missed", PrimaryLP: "dive-deep", SecondaryLPs: []string{"highest-standards", "ownership"}, Category: "Quality & Standards"},
	{ID: "q22", Text: "Describe a time you committed to a decision you disagreed with", PrimaryLP: "backbone", SecondaryLPs: []string{"earn-trust", "deliver-results"}, Category: "Conflict & Influence"},
	{ID: "q23", Text: "Tell me about receiving tough feedback", PrimaryLP: "earn-trust", SecondaryLPs: []string{"learn-curious", "highest-standards"}, Category: "Failure & Learning"},
	{ID: "q24", Text: "Describe making your workplace more inclusive", PrimaryLP: "best-employer", SecondaryLPs: []string{"earn-trust", "hire-develop"}, Category: "Leadership & Team"},
	{ID: "q25", Text: "Tell me about considering broader impact of a decision", PrimaryLP: "broad-responsibility", SecondaryLPs: []string{"customer-obsession", "think-big"}, Category: "Leadership & Team"},
}

var questionCategories = []string{
	CategoryAll,
	"Customer Focus",
	"Decision Making",
	"Conflict & Influence",
	"Innovation",
	"Failure & Learning",
	"Execution",
	"Leadership & Team",
	"Quality & Standards",
	"Growth & Adaptability",
	"Ownership",
}

// Questions returns a copy of the question bank.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionCategories returns the category list, starting with CategoryAll.
func QuestionCategories() []string {
	out := make([]string, len(questionCategories))
	copy(out, questionCategories)
	return out
}

// GetQuestion looks up a question by id.
func GetQuestion(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
