package inmemory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dvloznov/wealthmind/internal/jobs"
)

func waitForStatus(t *testing.T, store *Store, jobID string, want jobs.Status) *jobs.ExtractTextJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.GetJob(context.Background(), jobID)
		if err == nil && job.Status == want {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Job %s never reached status %s", jobID, want)
	return nil
}

func TestQueueProcessesJob(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, store)
	defer q.Close()

	var handled atomic.Int32
	handler := func(ctx context.Context, job *jobs.ExtractTextJob) error {
		handled.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := q.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	job := &jobs.ExtractTextJob{SessionID: "s1", RawText: "Paid 500 for Lunch"}
	if err := q.PublishExtractText(ctx, job); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if job.JobID == "" {
		t.Fatal("Publish did not assign a job ID")
	}

	got := waitForStatus(t, store, job.JobID, jobs.StatusCompleted)
	if got.StartedAt == nil || got.CompletedAt == nil {
		t.Error("Completed job missing timestamps")
	}
	if got.Error != "" {
		t.Errorf("Completed job has error %q", got.Error)
	}
	if handled.Load() != 1 {
		t.Errorf("Handler ran %d times, want exactly 1", handled.Load())
	}
}

func TestQueueFailedJobIsTerminal(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, store)
	defer q.Close()

	var attempts atomic.Int32
	handler := func(ctx context.Context, job *jobs.ExtractTextJob) error {
		attempts.Add(1)
		return errors.New("model unavailable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := q.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	job := &jobs.ExtractTextJob{SessionID: "s1"}
	if err := q.PublishExtractText(ctx, job); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got := waitForStatus(t, store, job.JobID, jobs.StatusFailed)
	if got.Error == "" {
		t.Error("Failed job has no error message")
	}

	// No retries: the attempt count stays at one
	time.Sleep(50 * time.Millisecond)
	if attempts.Load() != 1 {
		t.Errorf("Handler ran %d times, want exactly 1", attempts.Load())
	}
}

func TestQueueRejectsAfterClose(t *testing.T) {
	q := NewQueue(10, NewStore())
	if err := q.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	job := &jobs.ExtractTextJob{SessionID: "s1"}
	if err := q.PublishExtractText(context.Background(), job); err == nil {
		t.Error("Publish succeeded on closed queue, want error")
	}
	if err := q.Start(context.Background(), nil); err == nil {
		t.Error("Start succeeded on closed queue, want error")
	}
}

func TestQueueStopWaitsForInflight(t *testing.T) {
	store := NewStore()
	q := NewQueue(10, store)

	release := make(chan struct{})
	handler := func(ctx context.Context, job *jobs.ExtractTextJob) error {
		<-release
		return nil
	}

	ctx := context.Background()
	if err := q.Start(ctx, handler); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	job := &jobs.ExtractTextJob{SessionID: "s1"}
	if err := q.PublishExtractText(ctx, job); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	waitForStatus(t, store, job.JobID, jobs.StatusRunning)

	stopped := make(chan error, 1)
	go func() {
		stopped <- q.Stop(context.Background())
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a job was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	if err := <-stopped; err != nil {
		t.Errorf("Stop failed: %v", err)
	}

	waitForStatus(t, store, job.JobID, jobs.StatusCompleted)
}

func TestStoreCopiesJobs(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	job := &jobs.ExtractTextJob{JobID: "j1", Status: jobs.StatusPending}
	if err := store.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	// Mutating the original must not leak into the store
	job.Status = jobs.StatusFailed

	got, err := store.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if got.Status != jobs.StatusPending {
		t.Errorf("Stored job status = %s, want pending", got.Status)
	}

	// Mutating the returned copy must not change future reads
	got.Status = jobs.StatusRunning
	again, _ := store.GetJob(ctx, "j1")
	if again.Status != jobs.StatusPending {
		t.Errorf("Store state leaked: status = %s, want pending", again.Status)
	}
}

func TestStoreRequiresJobID(t *testing.T) {
	store := NewStore()
	if err := store.SaveJob(context.Background(), &jobs.ExtractTextJob{}); err == nil {
		t.Error("SaveJob without ID succeeded, want error")
	}
	if _, err := store.GetJob(context.Background(), "missing"); err == nil {
		t.Error("GetJob for unknown ID succeeded, want error")
	}
}
