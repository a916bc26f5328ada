package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for job creation.
type Repository interface {
	CreateJob(ctx context.Context, job *Job) error
}

// Enqueuer converts queued hook payloads into stored jobs. It satisfies the
// engine's deferred-execution collaborator contract: the enqueue is
// fire-and-forget from the engine's point of view, not awaited.
type Enqueuer struct {
	repo       Repository
	maxRetries int8
}

// EnqueuerOption configures the enqueuer.
type EnqueuerOption func(*Enqueuer)

// WithMaxRetries sets how many attempts a job gets before it is failed.
func WithMaxRetries(n int8) EnqueuerOption {
	return func(e *Enqueuer) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

// NewEnqueuer creates an Enqueuer over the given repository.
func NewEnqueuer(repo Repository, opts ...EnqueuerOption) (*Enqueuer, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	e := &Enqueuer{repo: repo, maxRetries: 3}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Enqueue stores one job for the given portable reference and payload.
func (e *Enqueuer) Enqueue(ctx context.Context, kind string, payload map[string]any) error {
	if kind == "" {
		return ErrKindEmpty
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Join(ErrPayloadMarshal, err)
	}

	now := time.Now()
	job := &Job{
		ID:          uuid.New(),
		Kind:        kind,
		Payload:     body,
		Status:      StatusPending,
		MaxRetries:  e.maxRetries,
		ScheduledAt: now,
		CreatedAt:   now,
	}
	if err := e.repo.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("%w: job %q: %w", ErrJobCreate, kind, err)
	}
	return nil
}
