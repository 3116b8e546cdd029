package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/board-panel/internal/types"
)

// AnalyzeRequest represents the request body for /api/analyze
type AnalyzeRequest struct {
	StartupData types.StartupProfile `json:"startup_data"`
}

// AnalyzeResponse represents the response for /api/analyze
type AnalyzeResponse struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// handleAnalyze validates a startup profile and queues its analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.StartupData.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	id := s.orchestrator.Submit(req.StartupData)

	s.jsonResponse(w, http.StatusAccepted, AnalyzeResponse{
		AnalysisID: id.String(),
		Status:     string(types.StatusQueued),
		Message:    "Analysis queued. Check status at /api/results/{analysis_id}. Expected completion: 2-3 minutes due to rate limits.",
	})
}

// handleResults returns the job record for an analysis id.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Analysis ID is required")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID format")
		return
	}

	job, ok := s.orchestrator.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Analysis ID not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleHealth is the service banner endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"service": "Board Panel API",
		"status":  "running",
		"version": Version,
		"endpoints": map[string]string{
			"analyze": "POST /api/analyze",
			"results": "GET /api/results/{analysis_id}",
		},
	})
}

// validationMessage flattens a validator error into a single client-facing
// message naming the first offending field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return "Invalid startup profile: field '" + first.Namespace() + "' failed rule '" + first.Tag() + "'"
	}
	return "Invalid startup profile: " + err.Error()
}
