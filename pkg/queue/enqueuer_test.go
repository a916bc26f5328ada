package queue_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/queue"
)

func TestEnqueuer(t *testing.T) {
	t.Parallel()

	t.Run("nil repository rejected", func(t *testing.T) {
		t.Parallel()

		_, err := queue.NewEnqueuer(nil)
		assert.ErrorIs(t, err, queue.ErrRepositoryNil)
	})

	t.Run("stores a pending job with serialized payload", func(t *testing.T) {
		t.Parallel()

		repo := queue.NewMemoryRepository()
		e, err := queue.NewEnqueuer(repo)
		require.NoError(t, err)

		payload := map[string]any{"to_state": "processing", "event": "start"}
		require.NoError(t, e.Enqueue(context.Background(), "OrderNotifier@SendEmail", payload))

		jobs := repo.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, "OrderNotifier@SendEmail", jobs[0].Kind)
		assert.Equal(t, queue.StatusPending, jobs[0].Status)
		assert.EqualValues(t, 3, jobs[0].MaxRetries)
		assert.False(t, jobs[0].CreatedAt.IsZero())

		var got map[string]any
		require.NoError(t, json.Unmarshal(jobs[0].Payload, &got))
		assert.Equal(t, "processing", got["to_state"])
	})

	t.Run("empty kind rejected", func(t *testing.T) {
		t.Parallel()

		e, err := queue.NewEnqueuer(queue.NewMemoryRepository())
		require.NoError(t, err)
		assert.ErrorIs(t, e.Enqueue(context.Background(), "", nil), queue.ErrKindEmpty)
	})

	t.Run("custom retry budget", func(t *testing.T) {
		t.Parallel()

		repo := queue.NewMemoryRepository()
		e, err := queue.NewEnqueuer(repo, queue.WithMaxRetries(5))
		require.NoError(t, err)

		require.NoError(t, e.Enqueue(context.Background(), "X@Y", nil))
		jobs := repo.Jobs()
		require.Len(t, jobs, 1)
		assert.EqualValues(t, 5, jobs[0].MaxRetries)
	})
}

func TestMemoryRepository(t *testing.T) {
	t.Parallel()

	t.Run("claim moves oldest pending to processing", func(t *testing.T) {
		t.Parallel()

		repo := queue.NewMemoryRepository()
		e, err := queue.NewEnqueuer(repo)
		require.NoError(t, err)
		require.NoError(t, e.Enqueue(context.Background(), "A@First", nil))
		require.NoError(t, e.Enqueue(context.Background(), "B@Second", nil))

		job, err := repo.ClaimJob(context.Background())
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, "A@First", job.Kind)
		assert.Equal(t, queue.StatusProcessing, job.Status)
	})

	t.Run("failed job requeues until retries exhausted", func(t *testing.T) {
		t.Parallel()

		repo := queue.NewMemoryRepository()
		e, err := queue.NewEnqueuer(repo, queue.WithMaxRetries(2))
		require.NoError(t, err)
		require.NoError(t, e.Enqueue(context.Background(), "A@Flaky", nil))

		job, err := repo.ClaimJob(context.Background())
		require.NoError(t, err)
		require.NoError(t, repo.MarkFailed(context.Background(), job.ID, "first failure"))

		stored, ok := repo.Job(job.ID)
		require.True(t, ok)
		assert.Equal(t, queue.StatusPending, stored.Status)
		assert.EqualValues(t, 1, stored.RetryCount)

		job, err = repo.ClaimJob(context.Background())
		require.NoError(t, err)
		require.NoError(t, repo.MarkFailed(context.Background(), job.ID, "second failure"))

		stored, ok = repo.Job(job.ID)
		require.True(t, ok)
		assert.Equal(t, queue.StatusFailed, stored.Status)
		require.NotNil(t, stored.Error)
		assert.Equal(t, "second failure", *stored.Error)
	})
}
