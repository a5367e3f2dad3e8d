// Package inmemory provides channel-backed implementations of the job
// queue and store, suitable for the single-instance deployments this
// application targets.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvloznov/wealthmind/internal/jobs"
)

// Store keeps job state in memory. Safe for concurrent use; state is lost
// on restart, which is acceptable since extraction jobs are short-lived
// and re-runnable.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.ExtractTextJob
}

// NewStore creates an empty in-memory job store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*jobs.ExtractTextJob)}
}

// SaveJob saves or updates a job. Copies are stored and returned so
// callers cannot mutate shared state.
func (s *Store) SaveJob(ctx context.Context, job *jobs.ExtractTextJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy
	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.ExtractTextJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

var _ jobs.JobStore = (*Store)(nil)
