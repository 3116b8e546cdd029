package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/board-panel/internal/advisory"
	"github.com/jonathan/board-panel/internal/analysis"
	"github.com/jonathan/board-panel/internal/types"
)

// fakeCaller returns three category-tagged suggestions per advisor seat.
type fakeCaller struct{}

func (fakeCaller) RunAdvisor(_ context.Context, advisor advisory.Advisor, _ string) (*advisory.TaskOutput, error) {
	suggestions := make([]string, 3)
	for i := range suggestions {
		suggestions[i] = fmt.Sprintf("%s suggestion %d", advisor.Category, i+1)
	}
	return &advisory.TaskOutput{
		Category:   advisor.Category,
		Structured: &advisory.SuggestionPayload{Suggestions: suggestions},
	}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	pacer := analysis.NewPacer(6_000_000, 1, 1.0)
	orchestrator := analysis.NewOrchestrator(fakeCaller{}, pacer, 3, nil)

	srv, err := New(Config{Port: 0, Orchestrator: orchestrator})
	require.NoError(t, err)
	return srv
}

func validRequestBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"startup_data": map[string]any{
			"product_technology": map[string]any{
				"product_type":  "SaaS",
				"data_strategy": "User Data",
				"ai_usage":      "Planned",
			},
			"marketing_growth":  map[string]any{"monthly_users": 500},
			"team_organization": map[string]any{"team_size": 4},
			"competition_market": map[string]any{
				"known_competitors": []string{"Acme"},
			},
			"finance_runway": map[string]any{"funding_status": "Seed"},
		},
	})
	require.NoError(t, err)
	return body
}

func doRequest(srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalyze_ValidSubmission(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/analyze", validRequestBody(t))
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.AnalysisID)
	assert.NoError(t, err, "analysis_id must be a UUID")
	assert.Equal(t, "queued", resp.Status)
	assert.Contains(t, resp.Message, "/api/results/")
}

func TestHandleAnalyze_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/analyze", []byte(`{"startup_data":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestHandleAnalyze_InvalidEnum(t *testing.T) {
	srv := newTestServer(t)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(validRequestBody(t), &payload))
	payload["startup_data"].(map[string]any)["product_technology"].(map[string]any)["product_type"] = "Desktop"
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := doRequest(srv, http.MethodPost, "/api/analyze", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid startup profile")
	assert.Contains(t, rec.Body.String(), "oneof")
}

func TestHandleResults_UnknownID(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/results/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis ID not found")
}

func TestHandleResults_InvalidID(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/results/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid analysis ID format")
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "running", health["status"])
	assert.Equal(t, Version, health["version"])
}

func TestAnalyzeThenPollToCompletion(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/analyze", validRequestBody(t))
	require.Equal(t, http.StatusAccepted, rec.Code)

	var submitted AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

	var job types.Job
	require.Eventually(t, func() bool {
		poll := doRequest(srv, http.MethodGet, "/api/results/"+submitted.AnalysisID, nil)
		if poll.Code != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(poll.Body.Bytes(), &job); err != nil {
			return false
		}
		return job.Status.Terminal()
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, types.StatusCompleted, job.Status)
	require.NotNil(t, job.Result)
	require.NotNil(t, job.CompletedAt)
	assert.Equal(t, 15, job.Result.Total())
	for _, category := range types.Categories() {
		assert.Len(t, job.Result.Get(category), 3)
	}
}

func TestRateLimiting_AnalyzeBurst(t *testing.T) {
	// Default endpoint config allows a burst of 3 submissions per client.
	pacer := analysis.NewPacer(6_000_000, 1, 1.0)
	orchestrator := analysis.NewOrchestrator(fakeCaller{}, pacer, 3, nil)
	srv, err := New(Config{Port: 0, Orchestrator: orchestrator})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rec := doRequest(srv, http.MethodPost, "/api/analyze", validRequestBody(t))
		require.Equal(t, http.StatusAccepted, rec.Code, "request %d should pass", i+1)
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := doRequest(srv, http.MethodPost, "/api/analyze", validRequestBody(t))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodOptions, "/api/analyze", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST"))
}

func TestNew_RequiresOrchestrator(t *testing.T) {
	_, err := New(Config{Port: 8002})
	assert.Error(t, err)
}
