package storybank

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/star-coach/internal/types"
)

//go:embed samples.yaml
var samplesYAML []byte

// Samples returns the built-in example stories used to seed a new bank.
// Each call decodes a fresh copy.
func Samples() ([]types.Story, error) {
	var bank Bank
	if err := yaml.Unmarshal(samplesYAML, &bank); err != nil {
		return nil, fmt.Errorf("failed to decode sample stories: %w", err)
	}
	return bank.Stories, nil
}
