package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSuggestions_Valid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "three suggestions",
			payload: `{"suggestions": ["first", "second", "third"]}`,
		},
		{
			name:    "seven suggestions",
			payload: `{"suggestions": ["a", "b", "c", "d", "e", "f", "g"]}`,
		},
		{
			name:    "extra fields tolerated",
			payload: `{"suggestions": ["a", "b", "c"], "confidence": 0.9}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, ValidateSuggestions(tt.payload))
		})
	}
}

func TestValidateSuggestions_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "too few suggestions",
			payload: `{"suggestions": ["only", "two"]}`,
		},
		{
			name:    "too many suggestions",
			payload: `{"suggestions": ["1", "2", "3", "4", "5", "6", "7", "8"]}`,
		},
		{
			name:    "non-string item",
			payload: `{"suggestions": ["a", "b", 42]}`,
		},
		{
			name:    "empty string item",
			payload: `{"suggestions": ["a", "b", ""]}`,
		},
		{
			name:    "missing suggestions key",
			payload: `{"other": []}`,
		},
		{
			name:    "suggestions not an array",
			payload: `{"suggestions": "do things"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuggestions(tt.payload)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.NotEmpty(t, verr.Errors)
			assert.Contains(t, err.Error(), "validation error")
		})
	}
}

func TestValidateSuggestions_UnparseableDocument(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not JSON at all", payload: "here are my thoughts on marketing"},
		{name: "truncated object", payload: `{"suggestions": ["a", "b"`},
		{name: "empty string", payload: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuggestions(tt.payload)
			require.Error(t, err)

			var loadErr *SchemaLoadError
			require.True(t, errors.As(err, &loadErr), "expected *SchemaLoadError, got %T", err)
			assert.Contains(t, err.Error(), "invalid json")
		})
	}
}
