package advisory

import "github.com/jonathan/board-panel/internal/types"

// SuggestionPayload is the structured response shape every advisor is asked
// to produce.
type SuggestionPayload struct {
	Suggestions []string `json:"suggestions"`
}

// TaskOutput is the closed set of shapes a single advisor call can yield.
// Structured is set only when the response passed schema validation; Raw
// always carries the model text (when any was obtained) so downstream
// extraction can fall back to it; Output is an alternate free-form field
// kept for responses that arrive outside the primary text channel.
type TaskOutput struct {
	Category   types.AdvisoryCategory
	Structured *SuggestionPayload
	Raw        string
	Output     string
}
