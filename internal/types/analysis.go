package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdvisoryCategory identifies one seat on the advisory panel.
type AdvisoryCategory string

// The five advisory categories. Their order is significant: it fixes both
// the external call sequence and the index used to map task outputs back to
// categories.
const (
	CategoryMarketing      AdvisoryCategory = "marketing"
	CategoryTechnical      AdvisoryCategory = "technical"
	CategoryOrganizational AdvisoryCategory = "organizational"
	CategoryCompetitive    AdvisoryCategory = "competitive"
	CategoryFinancial      AdvisoryCategory = "financial"
)

// Categories returns the advisory categories in fixed evaluation order.
func Categories() []AdvisoryCategory {
	return []AdvisoryCategory{
		CategoryMarketing,
		CategoryTechnical,
		CategoryOrganizational,
		CategoryCompetitive,
		CategoryFinancial,
	}
}

// SuggestionSet is an ordered list of non-empty, trimmed suggestions.
// A healthy set holds 3-7 entries; an empty set marks a degraded category.
type SuggestionSet []string

// Clean returns a copy of s with entries trimmed and empties dropped.
func (s SuggestionSet) Clean() SuggestionSet {
	cleaned := make(SuggestionSet, 0, len(s))
	for _, item := range s {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// AnalysisResults holds the per-category suggestion lists for one job.
// JSON field names match the public API contract.
type AnalysisResults struct {
	MarketingSuggestions   SuggestionSet `json:"marketing_suggestions"`
	TechSuggestions        SuggestionSet `json:"tech_suggestions"`
	OrgHRSuggestions       SuggestionSet `json:"org_hr_suggestions"`
	CompetitiveSuggestions SuggestionSet `json:"competitive_suggestions"`
	FinanceSuggestions     SuggestionSet `json:"finance_suggestions"`
}

// Set stores a suggestion set under its category.
func (r *AnalysisResults) Set(category AdvisoryCategory, suggestions SuggestionSet) {
	switch category {
	case CategoryMarketing:
		r.MarketingSuggestions = suggestions
	case CategoryTechnical:
		r.TechSuggestions = suggestions
	case CategoryOrganizational:
		r.OrgHRSuggestions = suggestions
	case CategoryCompetitive:
		r.CompetitiveSuggestions = suggestions
	case CategoryFinancial:
		r.FinanceSuggestions = suggestions
	}
}

// Get returns the suggestion set for a category.
func (r *AnalysisResults) Get(category AdvisoryCategory) SuggestionSet {
	switch category {
	case CategoryMarketing:
		return r.MarketingSuggestions
	case CategoryTechnical:
		return r.TechSuggestions
	case CategoryOrganizational:
		return r.OrgHRSuggestions
	case CategoryCompetitive:
		return r.CompetitiveSuggestions
	case CategoryFinancial:
		return r.FinanceSuggestions
	}
	return nil
}

// Total returns the suggestion count summed across all categories.
func (r *AnalysisResults) Total() int {
	total := 0
	for _, category := range Categories() {
		total += len(r.Get(category))
	}
	return total
}

// JobStatus is the lifecycle state of an analysis job. Transitions are
// strictly forward: Queued -> Processing -> Completed or Failed.
type JobStatus string

// Job lifecycle states.
const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether the status is an end state.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one analysis request and its outcome. A Job is created by the
// submission handler and mutated only by the orchestrator run that owns it;
// once terminal it is never written again.
type Job struct {
	ID          uuid.UUID        `json:"analysis_id"`
	Status      JobStatus        `json:"status"`
	SubmittedAt time.Time        `json:"submitted_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Profile     StartupProfile   `json:"-"`
	Result      *AnalysisResults `json:"result,omitempty"`
	Error       string           `json:"error,omitempty"`
	ErrorKind   string           `json:"error_kind,omitempty"`
}
