package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository implements the enqueuer and worker repository interfaces
// in memory, for tests and local development. Safe for concurrent use.
type MemoryRepository struct {
	mu    sync.Mutex
	jobs  map[uuid.UUID]*Job
	order []uuid.UUID
}

// NewMemoryRepository creates an empty in-memory job repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{jobs: make(map[uuid.UUID]*Job)}
}

// CreateJob stores a copy of the job.
func (mr *MemoryRepository) CreateJob(ctx context.Context, job *Job) error {
	if job == nil {
		return ErrJobCreate
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()
	if _, exists := mr.jobs[job.ID]; exists {
		return fmt.Errorf("%w: job %s already exists", ErrJobCreate, job.ID)
	}
	stored := *job
	mr.jobs[job.ID] = &stored
	mr.order = append(mr.order, job.ID)
	return nil
}

// ClaimJob moves the oldest pending job to processing and returns a copy.
// Returns nil when no job is ready.
func (mr *MemoryRepository) ClaimJob(ctx context.Context) (*Job, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	for _, id := range mr.order {
		job := mr.jobs[id]
		if job.Status != StatusPending || job.ScheduledAt.After(time.Now()) {
			continue
		}
		job.Status = StatusProcessing
		claimed := *job
		return &claimed, nil
	}
	return nil, nil
}

// MarkCompleted finalizes a processed job.
func (mr *MemoryRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	job, ok := mr.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	now := time.Now()
	job.Status = StatusCompleted
	job.ProcessedAt = &now
	return nil
}

// MarkFailed records a failed attempt, requeueing the job until its retries
// are exhausted.
func (mr *MemoryRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	job, ok := mr.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	job.RetryCount++
	job.Error = &reason
	if job.RetryCount < job.MaxRetries {
		job.Status = StatusPending
		return nil
	}
	now := time.Now()
	job.Status = StatusFailed
	job.ProcessedAt = &now
	return nil
}

// Job returns a copy of the stored job, for inspection in tests.
func (mr *MemoryRepository) Job(id uuid.UUID) (*Job, bool) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	job, ok := mr.jobs[id]
	if !ok {
		return nil, false
	}
	stored := *job
	return &stored, true
}

// Jobs returns copies of all stored jobs in creation order.
func (mr *MemoryRepository) Jobs() []Job {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	jobs := make([]Job, 0, len(mr.order))
	for _, id := range mr.order {
		jobs = append(jobs, *mr.jobs[id])
	}
	return jobs
}
