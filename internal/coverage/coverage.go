// Package coverage reports how a story bank covers the leadership principles
// and which stories answer which interview questions.
package coverage

import (
	"sort"

	"github.com/jonathan/star-coach/internal/evaluator"
	"github.com/jonathan/star-coach/internal/types"
)

// Level buckets how many stories back an LP.
type Level string

// Coverage levels.
const (
	LevelNone    Level = "none"
	LevelThin    Level = "thin"
	LevelCovered Level = "covered"
)

// LevelFor maps a story count onto a level.
func LevelFor(total int) Level {
	switch {
	case total == 0:
		return LevelNone
	case total == 1:
		return LevelThin
	default:
		return LevelCovered
	}
}

// LPCoverage counts the stories claiming one LP.
type LPCoverage struct {
	LP        types.LeadershipPrinciple `json:"lp"`
	Primary   int                       `json:"primary"`
	Secondary int                       `json:"secondary"`
	Total     int                       `json:"total"`
	Level     Level                     `json:"level"`
}

// Summarize counts coverage for every LP in catalog order.
func Summarize(stories []types.Story) []LPCoverage {
	lps := types.LeadershipPrinciples()
	out := make([]LPCoverage, 0, len(lps))
	for _, lp := range lps {
		c := LPCoverage{LP: lp}
		for i := range stories {
			switch stories[i].LPs.RoleOf(lp.ID) {
			case types.LPRolePrimary:
				c.Primary++
			case types.LPRoleSecondary:
				c.Secondary++
			case types.LPRoleNone:
				continue
			}
			c.Total++
		}
		c.Level = LevelFor(c.Total)
		out = append(out, c)
	}
	return out
}

// Gaps returns the LPs no story covers.
func Gaps(summary []LPCoverage) []types.LeadershipPrinciple {
	gaps := make([]types.LeadershipPrinciple, 0)
	for _, c := range summary {
		if c.Total == 0 {
			gaps = append(gaps, c.LP)
		}
	}
	return gaps
}

// MatrixRow is one story's line in the coverage matrix.
type MatrixRow struct {
	StoryID  string         `json:"storyId"`
	Title    string         `json:"title"`
	Company  string         `json:"company"`
	Score    float64        `json:"score"`
	Rating   types.Rating   `json:"rating"`
	Strength int            `json:"strength"`
	Roles    []types.LPRole `json:"-"`
	Cells    []string       `json:"cells"`
}

// Matrix builds a row per story with its evaluation and its role for each LP
// in catalog order.
func Matrix(stories []types.Story) []MatrixRow {
	results := evaluator.EvaluateAll(stories)
	lps := types.LeadershipPrinciples()

	rows := make([]MatrixRow, len(stories))
	for i := range stories {
		s := &stories[i]
		row := MatrixRow{
			StoryID:  s.ID,
			Title:    s.Title,
			Company:  s.Company,
			Score:    results[i].OverallScore,
			Rating:   results[i].OverallRating,
			Strength: s.Strength,
			Roles:    make([]types.LPRole, len(lps)),
			Cells:    make([]string, len(lps)),
		}
		for j, lp := range lps {
			role := s.LPs.RoleOf(lp.ID)
			row.Roles[j] = role
			row.Cells[j] = role.String()
		}
		rows[i] = row
	}
	return rows
}

// StoriesForQuestion returns the stories that can answer q. A story matches
// when it claims q's primary LP on either side, when one of q's secondary LPs
// is a primary LP of the story, or when it lists q explicitly. Stories holding
// q's primary LP as primary come first, then by strength descending.
func StoriesForQuestion(q types.Question, stories []types.Story) []types.Story {
	matched := make([]types.Story, 0)
	for i := range stories {
		if matchesQuestion(q, &stories[i]) {
			matched = append(matched, stories[i])
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		pi := matched[i].LPs.RoleOf(q.PrimaryLP) == types.LPRolePrimary
		pj := matched[j].LPs.RoleOf(q.PrimaryLP) == types.LPRolePrimary
		if pi != pj {
			return pi
		}
		return matched[i].Strength > matched[j].Strength
	})
	return matched
}

func matchesQuestion(q types.Question, s *types.Story) bool {
	if s.LPs.RoleOf(q.PrimaryLP) != types.LPRoleNone {
		return true
	}
	for _, lp := range q.SecondaryLPs {
		if s.LPs.RoleOf(lp) == types.LPRolePrimary {
			return true
		}
	}
	return s.HasQuestion(q.ID)
}

// AllLPs disables the LP filter in FilterQuestions.
const AllLPs = "all"

// FilterQuestions returns the questions in category that target lpID as primary
// or secondary. types.CategoryAll and AllLPs disable the respective filter;
// empty values do too.
func FilterQuestions(category, lpID string) []types.Question {
	out := make([]types.Question, 0)
	for _, q := range types.Questions() {
		if category != "" && category != types.CategoryAll && q.Category != category {
			continue
		}
		if lpID != "" && lpID != AllLPs && q.PrimaryLP != lpID && !contains(q.SecondaryLPs, lpID) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
