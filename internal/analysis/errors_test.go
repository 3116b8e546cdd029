package analysis

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/board-panel/internal/advisory"
	"github.com/jonathan/board-panel/internal/schemas"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: KindFatal,
		},
		{
			name:     "typed panel error",
			err:      &PanelError{Kind: KindRateLimit, Message: "budget exhausted"},
			expected: KindRateLimit,
		},
		{
			name:     "typed schema error",
			err:      &advisory.SchemaError{Category: "marketing", Cause: errors.New("bad shape")},
			expected: KindSchema,
		},
		{
			name:     "typed validation error",
			err:      &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "suggestions", Message: "too short"}}},
			expected: KindSchema,
		},
		{
			name:     "wrapped panel error",
			err:      fmt.Errorf("attempt failed: %w", &PanelError{Kind: KindRateLimit}),
			expected: KindRateLimit,
		},
		{
			name:     "429 in message",
			err:      errors.New("googleapi: Error 429: Resource has been exhausted"),
			expected: KindRateLimit,
		},
		{
			name:     "rate limit phrase in message",
			err:      errors.New("Rate limit exceeded, try again in 14s"),
			expected: KindRateLimit,
		},
		{
			name:     "rate_limit token in message",
			err:      errors.New("provider returned rate_limit_exceeded"),
			expected: KindRateLimit,
		},
		{
			name:     "validation error phrase",
			err:      errors.New("validation error:\n  1. suggestions: Array must have at least 3 items"),
			expected: KindSchema,
		},
		{
			name:     "invalid json phrase",
			err:      errors.New("invalid json: failed to load document"),
			expected: KindSchema,
		},
		{
			name:     "anything else is fatal",
			err:      errors.New("connection refused"),
			expected: KindFatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestPanelError_Error(t *testing.T) {
	cause := errors.New("upstream")
	err := &PanelError{Kind: KindRateLimit, Message: "panel attempt failed", Cause: cause}

	assert.Contains(t, err.Error(), "rate_limit")
	assert.Contains(t, err.Error(), "panel attempt failed")
	assert.ErrorIs(t, err, cause)

	bare := &PanelError{Kind: KindFatal, Message: "no result"}
	assert.Equal(t, "fatal: no result", bare.Error())
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		expected time.Duration
		ok       bool
	}{
		{
			name:     "whole seconds",
			msg:      "rate limit exceeded, try again in 14s",
			expected: 14 * time.Second,
			ok:       true,
		},
		{
			name:     "fractional seconds",
			msg:      "please try again in 12.5s before retrying",
			expected: 12500 * time.Millisecond,
			ok:       true,
		},
		{
			name:     "mixed case",
			msg:      "Try Again In 3s",
			expected: 3 * time.Second,
			ok:       true,
		},
		{
			name: "no suggestion present",
			msg:  "rate limit exceeded",
		},
		{
			name: "no parseable number",
			msg:  "try again in a few seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := parseRetryAfter(tt.msg)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, d)
			}
		})
	}
}
