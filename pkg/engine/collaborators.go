package engine

import (
	"context"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// Entity is a persisted object carrying state attributes. The engine mutates
// the attribute in place on the instance it is given and never clones it.
type Entity interface {
	EntityType() string
	EntityID() string
	State(attribute string) fsm.State
	SetState(attribute string, state fsm.State)
}

// Registry resolves runtime definitions per entity type and attribute.
type Registry interface {
	Definition(entityType, attribute string) (*fsm.Definition, error)
}

// Persister saves the mutated entity.
type Persister interface {
	Save(ctx context.Context, entity Entity) error
}

// Transactor wraps the mutate/hook/persist phases of an attempt in a
// reversible transaction, rolling back when fn returns an error.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics receives transition counters. Emission failures are isolated by the
// engine and never mask the transition outcome.
type Metrics interface {
	Record(event string, tags map[string]string)
}

// Enqueuer hands a queued hook's serializable payload to an out-of-band
// execution context. The engine only enqueues; running the job later is the
// worker's concern.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind string, payload map[string]any) error
}
