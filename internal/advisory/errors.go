package advisory

import "fmt"

// APICallError represents a transport or provider error from the model API.
// The provider message is preserved verbatim so rate-limit classification
// can inspect it.
type APICallError struct {
	Category string
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("advisor %s: API call failed: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("advisor %s: API call failed: %s", e.Category, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// SchemaError represents a response that was obtained but failed structural
// validation against the suggestions schema.
type SchemaError struct {
	Category string
	Cause    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("advisor %s: validation error: %v", e.Category, e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
