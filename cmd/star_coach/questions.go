package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/star-coach/internal/coverage"
	"github.com/jonathan/star-coach/internal/storybank"
	"github.com/jonathan/star-coach/internal/types"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List interview questions, optionally matched against a story bank",
	RunE:  runQuestions,
}

var (
	questionsCategory string
	questionsLP       string
	questionsFile     string
)

func init() {
	questionsCmd.Flags().StringVar(&questionsCategory, "category", types.CategoryAll, "Question category")
	questionsCmd.Flags().StringVar(&questionsLP, "lp", coverage.AllLPs, "Leadership principle id")
	questionsCmd.Flags().StringVarP(&questionsFile, "file", "f", "", "Story bank file to match stories from")
	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	if !slices.Contains(types.QuestionCategories(), questionsCategory) {
		return fmt.Errorf("unknown category %q", questionsCategory)
	}
	if questionsLP != coverage.AllLPs && !types.IsValidLP(questionsLP) {
		return fmt.Errorf("unknown leadership principle %q", questionsLP)
	}

	var stories []types.Story
	if questionsFile != "" {
		loaded, err := storybank.Load(questionsFile)
		if err != nil {
			return err
		}
		stories = loaded
		if stories == nil {
			stories = []types.Story{}
		}
	}

	questions := coverage.FilterQuestions(questionsCategory, questionsLP)
	if len(questions) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No questions match.")
		return nil
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), renderQuestions(questions, stories))
	return nil
}
