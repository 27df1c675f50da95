package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/star-coach/internal/coverage"
	"github.com/jonathan/star-coach/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	fixStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A526"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func ratingStyle(r types.Rating) lipgloss.Style {
	switch r {
	case types.RatingStrongHire, types.RatingHire:
		return goodStyle
	case types.RatingBorderline:
		return fixStyle
	default:
		return warnStyle
	}
}

func bulletList(style lipgloss.Style, marker string, items []string) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, style.Render(marker+" "+item))
	}
	return lines
}

// renderEvaluation draws one story's evaluation as a boxed report.
func renderEvaluation(story *types.Story, res types.StoryEvaluationResult) string {
	title := story.Title
	if title == "" {
		title = "(untitled)"
	}
	lines := []string{
		titleStyle.Render(title),
		fmt.Sprintf("%s %s  %s",
			labelStyle.Render("Score"),
			fmt.Sprintf("%.1f/10", res.OverallScore),
			ratingStyle(res.OverallRating).Render(string(res.OverallRating))),
		fmt.Sprintf("%s S %.1f  T %.1f  A %.1f  R %.1f   %s %d/3",
			labelStyle.Render("STAR"),
			res.StarScores.Situation, res.StarScores.Task, res.StarScores.Action, res.StarScores.Result,
			labelStyle.Render("Metrics"), res.MetricQuality),
	}
	if len(res.SeniorSignals.Present) > 0 {
		lines = append(lines, labelStyle.Render("Senior signals: ")+strings.Join(res.SeniorSignals.Present, ", "))
	}
	if len(res.LPAlignment.Strong) > 0 || len(res.LPAlignment.Weak) > 0 {
		lines = append(lines, fmt.Sprintf("%s strong [%s] weak [%s]",
			labelStyle.Render("LP alignment:"),
			strings.Join(res.LPAlignment.Strong, ", "),
			strings.Join(res.LPAlignment.Weak, ", ")))
	}

	lines = append(lines, bulletList(goodStyle, "+", res.Strengths)...)
	lines = append(lines, bulletList(fixStyle, "-", res.Improvements)...)
	lines = append(lines, bulletList(warnStyle, "!", res.Warnings)...)

	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderCoverage draws the per-LP summary, the gaps and the story matrix.
func renderCoverage(summary []coverage.LPCoverage, matrix []coverage.MatrixRow) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Leadership principle coverage"))
	sb.WriteString("\n")
	for _, c := range summary {
		style := goodStyle
		switch c.Level {
		case coverage.LevelNone:
			style = warnStyle
		case coverage.LevelThin:
			style = fixStyle
		case coverage.LevelCovered:
		}
		sb.WriteString(fmt.Sprintf("  %-38s %s\n",
			c.LP.Name,
			style.Render(fmt.Sprintf("%d primary, %d secondary", c.Primary, c.Secondary))))
	}

	if gaps := coverage.Gaps(summary); len(gaps) > 0 {
		names := make([]string, 0, len(gaps))
		for _, lp := range gaps {
			names = append(names, lp.Name)
		}
		sb.WriteString("\n")
		sb.WriteString(warnStyle.Render("Gaps: " + strings.Join(names, ", ")))
		sb.WriteString("\n")
	}

	if len(matrix) == 0 {
		return sb.String()
	}
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Story matrix"))
	sb.WriteString("\n")
	lps := types.LeadershipPrinciples()
	header := make([]string, 0, len(lps))
	for _, lp := range lps {
		header = append(header, fmt.Sprintf("%-3s", lp.Short))
	}
	sb.WriteString(fmt.Sprintf("  %-30s %s\n", "", labelStyle.Render(strings.Join(header, " "))))
	for _, row := range matrix {
		cells := make([]string, 0, len(row.Roles))
		for _, role := range row.Roles {
			cells = append(cells, fmt.Sprintf("%-3s", roleMark(role)))
		}
		sb.WriteString(fmt.Sprintf("  %-30s %s  %.1f\n", truncate(row.Title, 30), strings.Join(cells, " "), row.Score))
	}
	return sb.String()
}

// renderQuestions lists questions, each followed by matching stories when
// a story bank was given.
func renderQuestions(questions []types.Question, stories []types.Story) string {
	var sb strings.Builder
	for _, q := range questions {
		name := q.PrimaryLP
		if lp, ok := types.GetLP(q.PrimaryLP); ok {
			name = lp.Name
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", titleStyle.Render(q.ID), q.Text))
		sb.WriteString(labelStyle.Render(fmt.Sprintf("    %s · %s", q.Category, name)))
		sb.WriteString("\n")
		if stories == nil {
			continue
		}
		matched := coverage.StoriesForQuestion(q, stories)
		if len(matched) == 0 {
			sb.WriteString(warnStyle.Render("    no matching story"))
			sb.WriteString("\n")
			continue
		}
		for _, s := range matched {
			sb.WriteString(goodStyle.Render(fmt.Sprintf("    → %s (strength %d)", s.Title, s.Strength)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderAIEvaluation draws model feedback or a scorecard.
func renderAIEvaluation(eval *types.AIEvaluation) string {
	lines := []string{}
	if fb := eval.Feedback; fb != nil {
		lines = append(lines, titleStyle.Render("Coach feedback"), fb.Summary)
		lines = append(lines, bulletList(goodStyle, "+", fb.Strengths)...)
		lines = append(lines, bulletList(fixStyle, "-", fb.Improvements)...)
		lines = append(lines, bulletList(labelStyle, "#", fb.SuggestedMetrics)...)
		lines = append(lines, bulletList(labelStyle, "LP", fb.LPFeedback)...)
		if fb.InterviewTip != "" {
			lines = append(lines, labelStyle.Render("Tip: ")+fb.InterviewTip)
		}
	}
	if sc := eval.Scorecard; sc != nil {
		lines = append(lines,
			titleStyle.Render("Bar raiser scorecard"),
			fmt.Sprintf("%s %d/100  %s", labelStyle.Render("Total"), sc.TotalScore, ratingStyle(sc.Rating).Render(string(sc.Rating))))
		lines = append(lines, bulletList(warnStyle, "!", sc.RedFlags)...)
		for _, rw := range sc.RewriteSuggestions {
			lines = append(lines, fixStyle.Render(fmt.Sprintf("~ %s: %s", rw.Section, rw.Suggested)))
		}
	}
	footer := labelStyle.Render("model " + eval.Model)
	if eval.Cached {
		footer += labelStyle.Render(" (cached)")
	}
	lines = append(lines, footer)
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func roleMark(r types.LPRole) string {
	switch r {
	case types.LPRolePrimary:
		return "P"
	case types.LPRoleSecondary:
		return "s"
	default:
		return "."
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
