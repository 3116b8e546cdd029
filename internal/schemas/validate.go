// Package schemas provides JSON Schema validation for advisor output payloads.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// suggestionsSchema is the contract every advisor response must satisfy: a
// suggestions array of 3-7 non-empty strings. Embedded as a string so
// validation never depends on the working directory.
const suggestionsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "AdvisorSuggestions",
  "type": "object",
  "required": ["suggestions"],
  "properties": {
    "suggestions": {
      "type": "array",
      "minItems": 3,
      "maxItems": 7,
      "items": {
        "type": "string",
        "minLength": 1
      }
    }
  }
}`

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation error:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing a document against
// the schema (as opposed to the document merely failing validation).
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid json: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid json: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateSuggestions validates a JSON payload against the advisor
// suggestions schema. Returns nil when the payload conforms, a
// *SchemaLoadError when the payload is not parseable JSON, and a
// *ValidationError when it parses but violates the schema.
func ValidateSuggestions(jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(suggestionsSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "failed to load document for validation",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
