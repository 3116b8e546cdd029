package advisory

import (
	"context"
	"encoding/json"

	"github.com/jonathan/board-panel/internal/llm"
	"github.com/jonathan/board-panel/internal/schemas"
)

// Client performs the external model call for one advisor seat.
type Client struct {
	llm  llm.Client
	tier llm.ModelTier
}

// NewClient creates an advisory client backed by the default Gemini
// configuration.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llmClient, tier: llm.TierStandard}, nil
}

// NewClientWithLLM wraps an existing LLM client. Used by tests and by
// callers that manage the underlying client's lifecycle themselves.
func NewClientWithLLM(llmClient llm.Client) *Client {
	return &Client{llm: llmClient, tier: llm.TierStandard}
}

// Close releases the underlying LLM client.
func (c *Client) Close() error {
	if c.llm != nil {
		return c.llm.Close()
	}
	return nil
}

// RunAdvisor executes one advisor's analysis of the rendered profile.
//
// On a transport/provider failure it returns (nil, *APICallError). When a
// response is obtained but fails schema validation it returns the raw text
// in a TaskOutput together with a *SchemaError, so the caller can still
// attempt salvage extraction. Only a schema-valid response yields a
// Structured payload.
func (c *Client) RunAdvisor(ctx context.Context, advisor Advisor, renderedProfile string) (*TaskOutput, error) {
	prompt := advisor.BuildPrompt(renderedProfile)

	text, err := c.llm.GenerateJSON(ctx, prompt, c.tier)
	if err != nil {
		return nil, &APICallError{
			Category: string(advisor.Category),
			Message:  "failed to generate advisory content",
			Cause:    err,
		}
	}

	out := &TaskOutput{
		Category: advisor.Category,
		Raw:      text,
	}

	if err := schemas.ValidateSuggestions(text); err != nil {
		return out, &SchemaError{
			Category: string(advisor.Category),
			Cause:    err,
		}
	}

	var payload SuggestionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		// Schema validation parsed the document, so this should not
		// happen; treat it as a validation failure rather than fatal.
		return out, &SchemaError{
			Category: string(advisor.Category),
			Cause:    err,
		}
	}

	out.Structured = &payload
	return out, nil
}
