package analysis

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/board-panel/internal/advisory"
	"github.com/jonathan/board-panel/internal/db"
	"github.com/jonathan/board-panel/internal/types"
)

// minHealthyTotal is the suggestion count below which a completed analysis
// is logged as degraded. Degradation is a warning, not a failure.
const minHealthyTotal = 10

// AdvisorCaller is the external advisory collaborator: one model call per
// advisor seat. Implemented by advisory.Client; faked in tests.
type AdvisorCaller interface {
	RunAdvisor(ctx context.Context, advisor advisory.Advisor, renderedProfile string) (*advisory.TaskOutput, error)
}

// Orchestrator owns the analysis job lifecycle: it accepts submissions,
// runs the five advisory calls in fixed order through the pacer and retry
// controller, extracts suggestions per category, and finalizes the job
// record exactly once.
type Orchestrator struct {
	caller   AdvisorCaller
	pacer    *Pacer
	retry    *RetryController
	store    *JobStore
	database *db.DB
}

// NewOrchestrator wires an orchestrator. database may be nil; when set,
// terminal job records are archived best effort.
func NewOrchestrator(caller AdvisorCaller, pacer *Pacer, maxAttempts int, database *db.DB) *Orchestrator {
	return &Orchestrator{
		caller:   caller,
		pacer:    pacer,
		retry:    NewRetryController(maxAttempts),
		store:    NewJobStore(),
		database: database,
	}
}

// Submit creates a job in Queued state, schedules its execution, and
// returns the job id immediately.
func (o *Orchestrator) Submit(profile types.StartupProfile) uuid.UUID {
	job := &types.Job{
		ID:          uuid.New(),
		Status:      types.StatusQueued,
		SubmittedAt: time.Now().UTC(),
		Profile:     profile,
	}
	o.store.Create(job)

	go o.run(context.Background(), job.ID)

	return job.ID
}

// Get returns a snapshot of the job record, or false for an unknown id.
func (o *Orchestrator) Get(id uuid.UUID) (types.Job, bool) {
	return o.store.Get(id)
}

// run executes one job to a terminal state. It is the only writer of the
// job record.
func (o *Orchestrator) run(ctx context.Context, id uuid.UUID) {
	snapshot, ok := o.store.Get(id)
	if !ok {
		return
	}

	o.store.update(id, func(job *types.Job) {
		job.Status = types.StatusProcessing
	})
	log.Printf("analysis %s: processing", id)

	results, err := o.Analyze(ctx, &snapshot.Profile)

	now := time.Now().UTC()
	if err != nil {
		kind := Classify(err)
		log.Printf("analysis %s: failed (%s): %v", id, kind, err)
		o.store.update(id, func(job *types.Job) {
			job.Status = types.StatusFailed
			job.Error = err.Error()
			job.ErrorKind = string(kind)
			job.CompletedAt = &now
		})
	} else {
		log.Printf("analysis %s: completed with %d total suggestions", id, results.Total())
		o.store.update(id, func(job *types.Job) {
			job.Status = types.StatusCompleted
			job.Result = results
			job.CompletedAt = &now
		})
	}

	o.archive(ctx, id)
}

// Analyze runs the full advisory panel for a profile and aggregates the
// per-category suggestion sets. It is synchronous; Submit wraps it with job
// bookkeeping, and the CLI calls it directly.
func (o *Orchestrator) Analyze(ctx context.Context, profile *types.StartupProfile) (*types.AnalysisResults, error) {
	renderedProfile := advisory.RenderProfile(profile)
	panel := advisory.Panel()

	attempt := func(ctx context.Context) ([]*advisory.TaskOutput, error) {
		outputs := make([]*advisory.TaskOutput, 0, len(panel))
		for _, adv := range panel {
			if err := o.pacer.Acquire(ctx); err != nil {
				return outputs, err
			}
			out, err := o.caller.RunAdvisor(ctx, adv, renderedProfile)
			if out != nil {
				outputs = append(outputs, out)
			}
			if err != nil {
				return outputs, err
			}
		}
		return outputs, nil
	}

	outputs, err := o.retry.Run(ctx, attempt)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, &PanelError{Kind: KindFatal, Message: "no result returned from panel"}
	}

	// Outputs map to categories by position; a deficit leaves trailing
	// categories with empty sets rather than failing the job.
	results := &types.AnalysisResults{}
	for i, category := range types.Categories() {
		var out *advisory.TaskOutput
		if i < len(outputs) {
			out = outputs[i]
		}
		results.Set(category, ExtractSuggestions(out, category))
	}

	if total := results.Total(); total < minHealthyTotal {
		log.Printf("analysis degraded: only %d total suggestions extracted", total)
	}

	return results, nil
}

// archive writes a terminal job record to the database, best effort.
func (o *Orchestrator) archive(ctx context.Context, id uuid.UUID) {
	if o.database == nil {
		return
	}
	job, ok := o.store.Get(id)
	if !ok || !job.Status.Terminal() {
		return
	}
	if err := o.database.SaveAnalysis(ctx, &job); err != nil {
		log.Printf("analysis %s: failed to archive: %v", id, err)
	}
}
