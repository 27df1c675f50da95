package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/star-coach/internal/storybank"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Write the built-in example stories to start a story bank",
	Long: `Prints two worked example stories as YAML, or writes them to a new story bank
file with --out. An existing file is only replaced with --force.`,
	RunE: runSamples,
}

var (
	samplesOutput string
	samplesForce  bool
)

func init() {
	samplesCmd.Flags().StringVarP(&samplesOutput, "out", "o", "", "Story bank file to create (.json, .yaml or .yml)")
	samplesCmd.Flags().BoolVar(&samplesForce, "force", false, "Overwrite an existing story bank file")

	rootCmd.AddCommand(samplesCmd)
}

func runSamples(cmd *cobra.Command, _ []string) error {
	stories, err := storybank.Samples()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if samplesOutput == "" {
		data, err := yaml.Marshal(storybank.Bank{Stories: stories})
		if err != nil {
			return fmt.Errorf("failed to encode stories: %w", err)
		}
		_, _ = out.Write(data)
		return nil
	}

	if _, err := os.Stat(samplesOutput); err == nil && !samplesForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", samplesOutput)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", samplesOutput, err)
	}
	if err := storybank.Save(samplesOutput, stories); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Wrote %d sample stories to %s\n", len(stories), samplesOutput)
	return nil
}
