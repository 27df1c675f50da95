// Package storybank reads and writes story bank files in JSON or YAML.
package storybank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/star-coach/internal/types"
)

// Bank is the on-disk shape of a story bank.
type Bank struct {
	Stories []types.Story `json:"stories" yaml:"stories"`
}

// LoadError represents an error during file I/O or decoding
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported story bank extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads the stories in path. Stories without an id get a fresh one.
func Load(path string) ([]types.Story, error) {
	f, err := formatFor(path)
	if err != nil {
		return nil, &LoadError{Message: "unknown format", Cause: err}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var bank Bank
	switch f {
	case formatJSON:
		err = json.Unmarshal(content, &bank)
	case formatYAML:
		err = yaml.Unmarshal(content, &bank)
	}
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to decode %s", path),
			Cause:   err,
		}
	}

	for i := range bank.Stories {
		if bank.Stories[i].ID == "" {
			bank.Stories[i].ID = types.NewStory().ID
		}
		if bank.Stories[i].Strength == 0 {
			bank.Stories[i].Strength = types.DefaultStrength
		}
	}
	return bank.Stories, nil
}

// Save writes stories to path, choosing the format from its extension.
func Save(path string, stories []types.Story) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	bank := Bank{Stories: stories}
	if bank.Stories == nil {
		bank.Stories = []types.Story{}
	}

	var data []byte
	switch f {
	case formatJSON:
		data, err = json.MarshalIndent(bank, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(bank)
	}
	if err != nil {
		return fmt.Errorf("failed to encode stories: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Find returns the story with id, or nil.
func Find(stories []types.Story, id string) *types.Story {
	for i := range stories {
		if stories[i].ID == id {
			return &stories[i]
		}
	}
	return nil
}
