// Package llm wraps the text-generation provider used for AI story coaching.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for cheap structuring work such as story parsing
	TierLite ModelTier = "lite"
	// TierStandard is for short coaching feedback
	TierStandard ModelTier = "standard"
	// TierAdvanced is for full interviewer scorecards
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, currently the only one.
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature per tier; tiers without an entry use DefaultTemperature.
	Temperatures map[ModelTier]float32
}

// DefaultTemperature keeps structured output stable.
const DefaultTemperature float32 = 0.2

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperatures: map[ModelTier]float32{
			TierLite:     0.3,
			TierStandard: 0.7,
			TierAdvanced: 0.4,
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// GetTemperature returns the sampling temperature for a tier
func (c *Config) GetTemperature(tier ModelTier) float32 {
	if t, ok := c.Temperatures[tier]; ok {
		return t
	}
	return DefaultTemperature
}

// WithModel returns a copy of the config with model set for tier. An empty
// model leaves the config unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Provider:     c.Provider,
		Models:       make(map[ModelTier]string, len(c.Models)+1),
		Temperatures: make(map[ModelTier]float32, len(c.Temperatures)),
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	for k, v := range c.Temperatures {
		out.Temperatures[k] = v
	}
	if model != "" {
		out.Models[tier] = model
	}
	return out
}
