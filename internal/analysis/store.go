package analysis

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/board-panel/internal/types"
)

// JobStore is the in-memory mapping from job id to job record. Each record
// is written only by the orchestrator run that owns it; reads return a
// snapshot so handlers never observe a half-applied transition.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*types.Job
}

// NewJobStore creates an empty store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[uuid.UUID]*types.Job)}
}

// Create registers a new job record.
func (s *JobStore) Create(job *types.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// Get returns a snapshot of the job record, or false if the id is unknown.
// The Result pointer is shared but is never mutated after being set.
func (s *JobStore) Get(id uuid.UUID) (types.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return types.Job{}, false
	}
	return *job, true
}

// Len returns the number of stored jobs.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// update applies fn to the job record under the write lock. Terminal
// records are never touched again: updates against them are dropped.
func (s *JobStore) update(id uuid.UUID, fn func(*types.Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}
	fn(job)
}
