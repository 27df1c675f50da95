package evaluator

import "regexp"

type keywordRule struct {
	name    string
	pattern *regexp.Regexp
}

// seniorSignals is ordered; present and missing keep this order.
//
var seniorSignals = []keywordRule{
	{"cross-functional", regexp.MustCompile(`(?i)cross-functional|cross functional|multiple teams|stakeholder`)},
	{"strategic", regexp.MustCompile(`(?i)strategic|strategy|long-term|roadmap|vision`)},
	{"scale", regexp.MustCompile(`(?i)scale|million|thousands|org-wide|company-wide|global`)},
	{"leadership", regexp.MustCompile(`(?i)led|managed|mentored|coached|developed|hired`)},
	{"influence", regexp.MustCompile(`(?i)influenced|convinced|aligned|buy-in|stakeholder`)},
	{"mechanism", regexp.MustCompile(`(?i)process|mechanism|framework|system|standard`)},
	{"learning", regexp.MustCompile(`(?i)learned|realized|changed my approach|differently`)},
}

// lpKeywords covers ten of the sixteen principles; the rest are never judged.
//
var lpKeywords = map[string]*regexp.Regexp{
	"customer-obsession": regexp.MustCompile(`(?i)customer|user|client|feedback|experience`),
	"ownership":          regexp.MustCompile(`(?i)owned|responsible|accountability|end-to-end`),
	"invent-simplify":    regexp.MustCompile(`(?i)simplified|innovated|created|new approach|streamlined`),
	"are-right":          regexp.MustCompile(`(?i)wrong|incorrect|mistake|hypothesis|proved`),
	"learn-curious":      regexp.MustCompile(`(?i)learned|discovered|curious|explored|researched`),
	"dive-deep":          regexp.MustCompile(`(?i)analyzed|data|metrics|investigated|root cause`),
	"earn-trust":         regexp.MustCompile(`(?i)trust|relationship|transparent|honest|credibility`),
	"backbone":           regexp.MustCompile(`(?i)disagreed|pushed back|challenged|committed|despite`),
	"deliver-results":    regexp.MustCompile(`(?i)delivered|shipped|launched|achieved|completed`),
	"frugality":          regexp.MustCompile(`(?i)limited|constrained|efficient|resourceful|budget`),
}

// SignalNames returns the senior signal vocabulary in evaluation order.
func SignalNames() []string {
	names := make([]string, len(seniorSignals))
	for i, s := range seniorSignals {
		names[i] = s.name
	}
	return names
}
