package evaluator

import (
	"regexp"
	"strings"
)

var (
	numberPattern     = regexp.MustCompile(`\d+`)
	percentPattern    = regexp.MustCompile(`(?i)%|\bpercent\b`)
	dollarPattern     = regexp.MustCompile(`(?i)\$[\d,]+|\d+\s*(million|thousand|k|m|bn)`)
	timeframePattern  = regexp.MustCompile(`(?i)\d+\s*(day|week|month|quarter|year|sprint)`)
	firstPersonI      = regexp.MustCompile(`\bI\b`)
	firstPersonWe     = regexp.MustCompile(`(?i)\bwe\b`)
	actionVerbPattern = regexp.MustCompile(`(?i)\b(built|created|led|designed|analyzed|presented|convinced|negotiated|prioritized|launched|shipped|identified|proposed|implemented)\b`)
)

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func hasNumbers(text string) bool {
	return numberPattern.MatchString(text)
}

func hasPercentage(text string) bool {
	return percentPattern.MatchString(text)
}

// hasDollarAmount also matches a bare number followed by "m", so "5 months"
// counts as a dollar figure.
func hasDollarAmount(text string) bool {
	return dollarPattern.MatchString(text)
}

func hasTimeframe(text string) bool {
	return timeframePattern.MatchString(text)
}

func usesI(text string) bool {
	return firstPersonI.MatchString(text)
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}
