package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before JSON object",
			input:    "Here is my evaluation:\n{\"summary\": \"Good\"}",
			expected: `{"summary": "Good"}`,
		},
		{
			name:     "trailing chatter",
			input:    "{\"summary\": \"Good\"}\nLet me know if you need more.",
			expected: `{"summary": "Good"}`,
		},
		{
			name:     "no object",
			input:    "  sorry, I cannot help  ",
			expected: "sorry, I cannot help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	obj, ok := ExtractJSONObject(`x {"a": {"b": 1}} y`)
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, obj)

	_, ok = ExtractJSONObject("} {")
	assert.False(t, ok)

	_, ok = ExtractJSONObject("")
	assert.False(t, ok)
}
