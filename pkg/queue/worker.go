package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// WorkerRepository defines the storage operations a worker needs.
type WorkerRepository interface {
	ClaimJob(ctx context.Context) (*Job, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// Worker drains queued hook jobs: it resolves each job's portable reference
// through the hook registry, rehydrates the serialized transition input, and
// invokes the handler with the input's named-value bag.
type Worker struct {
	repo       WorkerRepository
	dispatcher *dispatch.Dispatcher
	interval   time.Duration
	log        *slog.Logger
}

// WorkerOption configures the worker.
type WorkerOption func(*Worker)

// WithPollInterval sets how often the worker polls for pending jobs.
func WithPollInterval(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithWorkerLogger sets the structured logger. Nil loggers are ignored.
func WithWorkerLogger(log *slog.Logger) WorkerOption {
	return func(w *Worker) {
		if log != nil {
			w.log = log
		}
	}
}

// NewWorker creates a worker resolving job references through registry.
func NewWorker(repo WorkerRepository, registry *dispatch.Registry, opts ...WorkerOption) (*Worker, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}
	if registry == nil {
		return nil, ErrRegistryNil
	}

	w := &Worker{
		repo:       repo,
		dispatcher: dispatch.NewDispatcher(registry),
		interval:   time.Second,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run polls for jobs until the context is canceled. Pending jobs are drained
// back-to-back; the poll interval only applies when the queue is empty.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		processed, err := w.ProcessNext(ctx)
		if err != nil {
			w.log.ErrorContext(ctx, "job processing failed", slog.Any("error", err))
		}
		if processed {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ProcessNext claims and handles a single job. It reports whether a job was
// available; handler failures are recorded on the job, not returned.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	job, err := w.repo.ClaimJob(ctx)
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, nil
	}

	if err := w.handle(ctx, job); err != nil {
		w.log.WarnContext(ctx, "queued hook failed",
			slog.String("kind", job.Kind), slog.Any("error", err))
		return true, w.repo.MarkFailed(ctx, job.ID, err.Error())
	}
	return true, w.repo.MarkCompleted(ctx, job.ID)
}

func (w *Worker) handle(ctx context.Context, job *Job) error {
	callable, err := dispatch.ParseRef(job.Kind)
	if err != nil {
		return err
	}

	var raw map[string]any
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &raw); err != nil {
			return fmt.Errorf("unmarshal job payload: %w", err)
		}
	}
	in, err := fsm.HydrateInput(raw)
	if err != nil {
		return err
	}

	_, err = w.dispatcher.Invoke(ctx, callable, in.Bag())
	return err
}
