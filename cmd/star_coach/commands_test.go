package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/star-coach/internal/config"
	"github.com/jonathan/star-coach/internal/server"
	"github.com/jonathan/star-coach/internal/storybank"
	"github.com/jonathan/star-coach/internal/types"
)

func TestEvaluateCommand_Report(t *testing.T) {
	path := writeBank(t, "bank.yaml", testBank)

	out, err := execute(t, "evaluate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Fixing the billing pipeline")
	assert.Contains(t, out, "Half-written story")
	assert.Contains(t, out, "Needs Work")
}

func TestEvaluateCommand_JSONForOneStory(t *testing.T) {
	path := writeBank(t, "bank.yaml", testBank)

	out, err := execute(t, "evaluate", "-f", path, "--id", "empty", "--json")
	require.NoError(t, err)

	var report []evaluatedStory
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report, 1)
	assert.Equal(t, "empty", report[0].StoryID)
	assert.Equal(t, 1.0, report[0].Result.OverallScore)
}

func TestEvaluateCommand_Errors(t *testing.T) {
	path := writeBank(t, "bank.yaml", testBank)

	_, err := execute(t, "evaluate", "-f", path, "--id", "nope")
	assert.ErrorContains(t, err, `story "nope" not found`)

	_, err = execute(t, "evaluate")
	assert.Error(t, err)

	_, err = execute(t, "evaluate", "-f", writeBank(t, "bank.txt", testBank))
	assert.ErrorContains(t, err, "unsupported story bank extension")
}

func TestCoverageCommand(t *testing.T) {
	path := writeBank(t, "bank.yaml", testBank)

	out, err := execute(t, "coverage", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ownership")
	assert.Contains(t, out, "Gaps:")
	assert.Contains(t, out, "Customer Obsession")
	assert.Contains(t, out, "Story matrix")
}

func TestQuestionsCommand(t *testing.T) {
	out, err := execute(t, "questions", "--category", "Innovation", "--lp", "frugality")
	require.NoError(t, err)
	assert.Contains(t, out, "q8")

	path := writeBank(t, "bank.yaml", testBank)
	out, err = execute(t, "questions", "--lp", "frugality", "-f", path)
	require.NoError(t, err)
	// q10 asks about frugality as primary, which the billing story holds as secondary
	assert.Contains(t, out, "Fixing the billing pipeline")

	_, err = execute(t, "questions", "--category", "Cooking")
	assert.ErrorContains(t, err, "unknown category")

	_, err = execute(t, "questions", "--lp", "charisma")
	assert.ErrorContains(t, err, "unknown leadership principle")
}

func TestMigrateCommand_Print(t *testing.T) {
	out, err := execute(t, "migrate", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS stories")
}

func TestMigrateCommand_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STAR_COACH_DATABASE_URL", "")

	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestTokenCommand(t *testing.T) {
	secret := "cli-test-secret-that-is-long-enough"
	t.Setenv("JWT_SECRET", secret)
	owner := uuid.New()

	out, err := execute(t, "token", "--user", owner.String())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "owner: "+owner.String(), lines[0])

	svc := server.NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 24})
	claims, err := svc.ValidateToken(lines[2])
	require.NoError(t, err)
	assert.Equal(t, owner, claims.OwnerID)
}

func TestTokenCommand_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STAR_COACH_JWT_SECRET", "")
	_, err := execute(t, "token")
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "cli-test-secret")
	_, err = execute(t, "token", "--user", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid --user")
}

func TestParseCommand_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("STAR_COACH_GEMINI_API_KEY", "")
	input := writeBank(t, "raw.txt", "Last year our checkout service kept timing out during sales, so I rebuilt it.")

	_, err := execute(t, "parse", "-i", input)
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestReviewCommand_InvalidMode(t *testing.T) {
	path := writeBank(t, "bank.yaml", testBank)

	_, err := execute(t, "review", "-f", path, "--mode", "essay")
	assert.ErrorContains(t, err, "invalid evaluation mode")
}

func TestReviewItems(t *testing.T) {
	stories, err := storybank.Load(writeBank(t, "bank.yaml", testBank))
	require.NoError(t, err)

	items, err := reviewItems(stories, "", "L6")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "billing", items[0].StoryID)
	assert.Equal(t, "L6", items[0].Request.TargetLevel)
	assert.Equal(t, []string{"ownership", "dive-deep"}, items[0].Request.PrimaryLPs)

	items, err = reviewItems(stories, "empty", "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = reviewItems(stories, "missing", "")
	assert.Error(t, err)
}

func TestWriteParsedStory(t *testing.T) {
	story := types.NewStory()
	story.Title = "Rebuilt checkout"

	out, err := captureWrite(t, "", story, types.ConfidenceHigh)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Rebuilt checkout")

	path := filepath.Join(t.TempDir(), "bank.yaml")
	out, err = captureWrite(t, path, story, types.ConfidenceLow)
	require.NoError(t, err)
	assert.Contains(t, out, "Low confidence")

	second := types.NewStory()
	second.Title = "Second"
	_, err = captureWrite(t, path, second, types.ConfidenceMedium)
	require.NoError(t, err)

	saved, err := storybank.Load(path)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, story.ID, saved[0].ID)
	assert.Equal(t, "Second", saved[1].Title)
}

func captureWrite(t *testing.T, path string, story types.Story, conf types.Confidence) (string, error) {
	t.Helper()
	var buf strings.Builder
	parseCmd.SetOut(&buf)
	defer parseCmd.SetOut(os.Stdout)
	err := writeParsedStory(parseCmd, path, story, conf)
	return buf.String(), err
}

func TestSamplesCommand(t *testing.T) {
	out, err := execute(t, "samples")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Checkout Hypothesis Proven Wrong")

	path := filepath.Join(t.TempDir(), "bank.json")
	out, err = execute(t, "samples", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 sample stories")

	saved, err := storybank.Load(path)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "influence-at-scale", saved[1].ID)

	_, err = execute(t, "samples", "-o", path)
	assert.ErrorContains(t, err, "already exists")
	_, err = execute(t, "samples", "-o", path, "--force")
	assert.NoError(t, err)

	out, err = execute(t, "coverage", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Earn Trust")
}
