// Package analysis implements the advisory analysis orchestrator: outbound
// call pacing, retry with classification, layered suggestion extraction, and
// the in-memory job store.
package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/board-panel/internal/advisory"
	"github.com/jonathan/board-panel/internal/schemas"
)

// ErrorKind classifies a panel failure for retry decisions and reporting.
type ErrorKind string

// Error kinds, from retryable to terminal.
const (
	// KindRateLimit marks a transient provider rate-limit rejection.
	KindRateLimit ErrorKind = "rate_limit"
	// KindSchema marks a response that failed structural validation.
	KindSchema ErrorKind = "schema_validation"
	// KindFatal marks any other failure; it aborts the job.
	KindFatal ErrorKind = "fatal"
)

// PanelError is the terminal error surfaced to the job record. Kind is the
// machine-readable classification; Message is for humans.
type PanelError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *PanelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PanelError) Unwrap() error {
	return e.Cause
}

// Classify maps an error from a panel attempt onto an ErrorKind. Typed
// errors are matched first; message-pattern matching is the heuristic of
// last resort and is deliberately confined to this one function.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindFatal
	}

	var panelErr *PanelError
	if errors.As(err, &panelErr) {
		return panelErr.Kind
	}

	var schemaErr *advisory.SchemaError
	if errors.As(err, &schemaErr) {
		return KindSchema
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return KindSchema
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate_limit"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "429"):
		return KindRateLimit
	case strings.Contains(msg, "validation error"),
		strings.Contains(msg, "invalid json"):
		return KindSchema
	default:
		return KindFatal
	}
}

// parseRetryAfter extracts a provider-suggested wait from a rate-limit
// message of the form "... try again in 12.345s ...". Returns false when no
// usable duration is present.
func parseRetryAfter(msg string) (time.Duration, bool) {
	msg = strings.ToLower(msg)
	idx := strings.Index(msg, "try again in")
	if idx < 0 {
		return 0, false
	}

	rest := strings.TrimSpace(msg[idx+len("try again in"):])
	end := strings.Index(rest, "s")
	if end <= 0 {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(rest[:end]), 64)
	if err != nil || seconds < 0 {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}
