package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubjectExtractor pulls the acting subject out of the request context.
type SubjectExtractor func(ctx context.Context) (id, kind string, ok bool)

type logger struct {
	storage          Storage
	subjectExtractor SubjectExtractor
}

// Option applies configuration to the logger during creation.
type Option func(*logger)

// WithSubjectExtractor attributes entries to an acting subject pulled from
// the context when the engine did not set one explicitly.
func WithSubjectExtractor(fn SubjectExtractor) Option {
	return func(l *logger) {
		l.subjectExtractor = fn
	}
}

// NewLogger creates a transition audit logger writing to storage.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &logger{storage: storage}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogSuccess records a completed transition.
func (l *logger) LogSuccess(ctx context.Context, entry Entry) error {
	return l.log(ctx, entry, ResultSuccess)
}

// LogFailure records a failed attempt. The entry's Error field carries the
// exception summary composed by the engine.
func (l *logger) LogFailure(ctx context.Context, entry Entry) error {
	return l.log(ctx, entry, ResultFailure)
}

func (l *logger) log(ctx context.Context, entry Entry, result Result) error {
	entry.ID = uuid.New().String()
	entry.Result = result
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.SubjectID == "" && l.subjectExtractor != nil {
		if id, kind, ok := l.subjectExtractor(ctx); ok {
			entry.SubjectID = id
			entry.SubjectType = kind
		}
	}

	if err := entry.Validate(); err != nil {
		return err
	}
	return l.storage.Store(ctx, entry)
}
