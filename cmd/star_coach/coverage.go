package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/star-coach/internal/coverage"
	"github.com/jonathan/star-coach/internal/storybank"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show leadership principle coverage for a story bank",
	RunE:  runCoverage,
}

var coverageFile string

func init() {
	coverageCmd.Flags().StringVarP(&coverageFile, "file", "f", "", "Path to story bank file (required)")
	if err := coverageCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, _ []string) error {
	stories, err := storybank.Load(coverageFile)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), renderCoverage(coverage.Summarize(stories), coverage.Matrix(stories)))
	return nil
}
