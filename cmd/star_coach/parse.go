package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/star-coach/internal/storybank"
	"github.com/jonathan/star-coach/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Structure a free-text story into STAR sections with the LLM",
	Long: `Reads a raw story from a text file, asks the model to split it into STAR
sections and suggest leadership principles, and appends the result to a story
bank file (or prints it as YAML when --out is not given).`,
	RunE: runParse,
}

var (
	parseInput  string
	parseOutput string
)

func init() {
	parseCmd.Flags().StringVarP(&parseInput, "input", "i", "", "Path to a text file with the raw story (required)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Story bank file to append the parsed story to")

	if err := parseCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(parseInput)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", parseInput, err)
	}

	c, cleanup, err := newCoach(cmd.Context(), appConfig, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	parsed, err := c.Parse(cmd.Context(), string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse story: %w", err)
	}
	story := parsed.ToStory()
	logger.Info("parsed story", zap.String("id", story.ID), zap.String("confidence", string(parsed.Confidence)))

	return writeParsedStory(cmd, parseOutput, story, parsed.Confidence)
}

// writeParsedStory appends story to the bank at path, creating it if needed.
// An empty path prints the story instead.
func writeParsedStory(cmd *cobra.Command, path string, story types.Story, confidence types.Confidence) error {
	out := cmd.OutOrStdout()
	if path == "" {
		data, err := yaml.Marshal(storybank.Bank{Stories: []types.Story{story}})
		if err != nil {
			return fmt.Errorf("failed to encode story: %w", err)
		}
		_, _ = out.Write(data)
		return nil
	}

	var stories []types.Story
	if _, err := os.Stat(path); err == nil {
		if stories, err = storybank.Load(path); err != nil {
			return err
		}
	}
	stories = append(stories, story)
	if err := storybank.Save(path, stories); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Added %q (%s confidence) to %s\n", story.Title, confidence, path)
	if confidence == types.ConfidenceLow {
		_, _ = fmt.Fprintln(out, warnStyle.Render("Low confidence: review the STAR sections before practising."))
	}
	return nil
}
