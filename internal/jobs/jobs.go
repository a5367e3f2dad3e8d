// Package jobs defines the asynchronous extraction job model. The API
// server queues one job per import request so handlers return immediately
// while the model call runs in the background.
package jobs

import (
	"context"
	"time"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ExtractTextJob is a request to run AI extraction over pasted text for a
// review session. Extraction is single-attempt: a failed job is terminal
// and the user retries by submitting text again.
type ExtractTextJob struct {
	JobID     string `json:"job_id"`
	SessionID string `json:"session_id"`
	RawText   string `json:"-"` // never persisted or logged verbatim

	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Publisher enqueues extraction jobs.
type Publisher interface {
	PublishExtractText(ctx context.Context, job *ExtractTextJob) error
	Close() error
}

// Consumer runs queued jobs through a handler.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}

// Handler processes one job. A returned error marks the job failed.
type Handler func(ctx context.Context, job *ExtractTextJob) error

// JobStore tracks job state so clients can poll for completion.
type JobStore interface {
	SaveJob(ctx context.Context, job *ExtractTextJob) error
	GetJob(ctx context.Context, jobID string) (*ExtractTextJob, error)
}
