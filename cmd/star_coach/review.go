package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/star-coach/internal/coach"
	"github.com/jonathan/star-coach/internal/storybank"
	"github.com/jonathan/star-coach/internal/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Ask the LLM coach to review stories",
	Long: `Sends a story to the model for coaching feedback or a bar raiser scorecard.
Without --id every story in the file is reviewed concurrently.`,
	RunE: runReview,
}

var (
	reviewFile  string
	reviewID    string
	reviewMode  string
	reviewLevel string
	reviewJSON  bool
)

func init() {
	reviewCmd.Flags().StringVarP(&reviewFile, "file", "f", "", "Path to story bank file (required)")
	reviewCmd.Flags().StringVar(&reviewID, "id", "", "Only review the story with this id")
	reviewCmd.Flags().StringVar(&reviewMode, "mode", string(types.ModeFeedback), "Evaluation mode: feedback or scorecard")
	reviewCmd.Flags().StringVar(&reviewLevel, "level", "", "Target level, e.g. L6 (defaults to config target_level)")
	reviewCmd.Flags().BoolVar(&reviewJSON, "json", false, "Print results as JSON")

	if err := reviewCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(reviewCmd)
}

// reviewItems selects the stories to review and builds their requests.
func reviewItems(stories []types.Story, id, level string) ([]coach.BatchItem, error) {
	if id != "" {
		story := storybank.Find(stories, id)
		if story == nil {
			return nil, fmt.Errorf("story %q not found", id)
		}
		stories = []types.Story{*story}
	}
	items := make([]coach.BatchItem, len(stories))
	for i := range stories {
		items[i] = coach.BatchItem{StoryID: stories[i].ID, Request: types.NewEvaluationRequest(&stories[i], level)}
	}
	return items, nil
}

func runReview(cmd *cobra.Command, _ []string) error {
	mode, ok := types.ParseEvaluationMode(reviewMode)
	if !ok {
		return fmt.Errorf("%w: %q", coach.ErrInvalidMode, reviewMode)
	}
	stories, err := storybank.Load(reviewFile)
	if err != nil {
		return err
	}
	level := reviewLevel
	if level == "" {
		level = appConfig.TargetLevel
	}
	items, err := reviewItems(stories, reviewID, level)
	if err != nil {
		return err
	}

	c, cleanup, err := newCoach(cmd.Context(), appConfig, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	results := c.EvaluateMany(cmd.Context(), items, mode)

	out := cmd.OutOrStdout()
	failed := 0
	if reviewJSON {
		evals := make([]*types.AIEvaluation, 0, len(results))
		for _, r := range results {
			if r.Err != nil {
				failed++
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.StoryID, r.Err)
				continue
			}
			evals = append(evals, r.Evaluation)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(evals); err != nil {
			return fmt.Errorf("failed to encode review JSON: %w", err)
		}
	} else {
		for _, r := range results {
			story := storybank.Find(stories, r.StoryID)
			_, _ = fmt.Fprintln(out, titleStyle.Render(story.Title))
			if r.Err != nil {
				failed++
				_, _ = fmt.Fprintln(out, warnStyle.Render(r.Err.Error()))
				continue
			}
			_, _ = fmt.Fprintln(out, renderAIEvaluation(r.Evaluation))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reviews failed", failed, len(results))
	}
	return nil
}
