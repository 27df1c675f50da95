package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/star-coach/internal/evaluator"
	"github.com/jonathan/star-coach/internal/storybank"
	"github.com/jonathan/star-coach/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score stories with the deterministic evaluator",
	Long:  "Scores every story in a story bank file (or one story with --id) and prints a report, or JSON with --json.",
	RunE:  runEvaluate,
}

var (
	evaluateFile string
	evaluateID   string
	evaluateJSON bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateFile, "file", "f", "", "Path to story bank file, .json or .yaml (required)")
	evaluateCmd.Flags().StringVar(&evaluateID, "id", "", "Only evaluate the story with this id")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Print results as JSON")

	if err := evaluateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

// evaluatedStory pairs a story id with its result in JSON output.
type evaluatedStory struct {
	StoryID string                      `json:"storyId"`
	Title   string                      `json:"title"`
	Result  types.StoryEvaluationResult `json:"result"`
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	stories, err := storybank.Load(evaluateFile)
	if err != nil {
		return err
	}
	if evaluateID != "" {
		story := storybank.Find(stories, evaluateID)
		if story == nil {
			return fmt.Errorf("story %q not found in %s", evaluateID, evaluateFile)
		}
		stories = []types.Story{*story}
	}

	results := evaluator.EvaluateAll(stories)
	logger.Debug("evaluated stories", zap.String("file", evaluateFile), zap.Int("count", len(results)))

	out := cmd.OutOrStdout()
	if evaluateJSON {
		report := make([]evaluatedStory, len(stories))
		for i := range stories {
			report[i] = evaluatedStory{StoryID: stories[i].ID, Title: stories[i].Title, Result: results[i]}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode evaluation JSON: %w", err)
		}
		return nil
	}

	for i := range stories {
		_, _ = fmt.Fprintln(out, renderEvaluation(&stories[i], results[i]))
	}
	return nil
}
