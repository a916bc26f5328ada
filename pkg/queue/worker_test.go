package queue_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
	"github.com/dmitrymomot/fsmkit/pkg/queue"
)

func TestWorker(t *testing.T) {
	t.Parallel()

	t.Run("requires repository and registry", func(t *testing.T) {
		t.Parallel()

		_, err := queue.NewWorker(nil, dispatch.NewRegistry())
		assert.ErrorIs(t, err, queue.ErrRepositoryNil)

		_, err = queue.NewWorker(queue.NewMemoryRepository(), nil)
		assert.ErrorIs(t, err, queue.ErrRegistryNil)
	})

	t.Run("processes a queued hook end to end", func(t *testing.T) {
		t.Parallel()

		repo := queue.NewMemoryRepository()
		e, err := queue.NewEnqueuer(repo)
		require.NoError(t, err)

		in := &fsm.Input{
			From:    fsm.StringState("pending"),
			To:      fsm.StringState("processing"),
			Event:   "start",
			Context: fsm.MapPayload{"reason": "restock"},
		}
		require.NoError(t, e.Enqueue(context.Background(), "OrderNotifier@SendEmail", in.MarshalMap()))

		registry := dispatch.NewRegistry()
		var got map[string]any
		registry.MustRegister("OrderNotifier", "SendEmail",
			func(_ context.Context, args map[string]any) (any, error) {
				got = args
				return nil, nil
			},
			dispatch.Param{Name: "to_state", Type: dispatch.Named("string")},
			dispatch.Param{Name: "context", Type: dispatch.Array()},
		)

		w, err := queue.NewWorker(repo, registry)
		require.NoError(t, err)

		processed, err := w.ProcessNext(context.Background())
		require.NoError(t, err)
		assert.True(t, processed)
		assert.Equal(t, "processing", got["to_state"])
		assert.Equal(t, map[string]any{"reason": "restock"}, got["context"])

		jobs := repo.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, queue.StatusCompleted, jobs[0].Status)
		assert.NotNil(t, jobs[0].ProcessedAt)
	})

	t.Run("empty queue reports nothing processed", func(t *testing.T) {
		t.Parallel()

		w, err := queue.NewWorker(queue.NewMemoryRepository(), dispatch.NewRegistry())
		require.NoError(t, err)

		processed, err := w.ProcessNext(context.Background())
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("unresolvable reference marks the job failed", func(t *testing.T) {
		t.Parallel()

		repo := queue.NewMemoryRepository()
		e, err := queue.NewEnqueuer(repo, queue.WithMaxRetries(1))
		require.NoError(t, err)
		require.NoError(t, e.Enqueue(context.Background(), "Ghost@Method", map[string]any{}))

		w, err := queue.NewWorker(repo, dispatch.NewRegistry())
		require.NoError(t, err)

		processed, err := w.ProcessNext(context.Background())
		require.NoError(t, err)
		assert.True(t, processed)

		jobs := repo.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, queue.StatusFailed, jobs[0].Status)
		require.NotNil(t, jobs[0].Error)
		assert.Contains(t, *jobs[0].Error, "cannot be resolved by name")
	})
}
