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
			name:     "plain JSON untouched",
			input:    `{"suggestions": ["a"]}`,
			expected: `{"suggestions": ["a"]}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"suggestions\": [\"a\"]}\n```",
			expected: `{"suggestions": ["a"]}`,
		},
		{
			name:     "generic fenced block",
			input:    "```\n{\"suggestions\": [\"a\"]}\n```",
			expected: `{"suggestions": ["a"]}`,
		},
		{
			name:     "fenced block with language identifier",
			input:    "```javascript\n{\"suggestions\": [\"a\"]}\n```",
			expected: `{"suggestions": ["a"]}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"suggestions\": []}\n  ",
			expected: `{"suggestions": []}`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
