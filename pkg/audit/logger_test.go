package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/audit"
)

func validEntry() audit.Entry {
	from := "pending"
	return audit.Entry{
		EntityType: "Order",
		EntityID:   "1",
		Attribute:  "status",
		FromState:  &from,
		ToState:    "processing",
		Event:      "start",
		Duration:   12 * time.Millisecond,
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	t.Run("panics on nil storage", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { audit.NewLogger(nil) })
	})

	t.Run("success entry gets id, result and timestamp", func(t *testing.T) {
		t.Parallel()

		storage := audit.NewMemoryStorage()
		l := audit.NewLogger(storage)

		require.NoError(t, l.LogSuccess(context.Background(), validEntry()))

		entries, err := storage.List(context.Background(), "Order", "1", "status")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.NotEmpty(t, entries[0].ID)
		assert.Equal(t, audit.ResultSuccess, entries[0].Result)
		assert.False(t, entries[0].CreatedAt.IsZero())
	})

	t.Run("failure entry carries the error summary", func(t *testing.T) {
		t.Parallel()

		storage := audit.NewMemoryStorage()
		l := audit.NewLogger(storage)

		entry := validEntry()
		entry.Error = "guard rejected"
		require.NoError(t, l.LogFailure(context.Background(), entry))

		entries, err := storage.List(context.Background(), "Order", "1", "status")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ResultFailure, entries[0].Result)
		assert.Equal(t, "guard rejected", entries[0].Error)
	})

	t.Run("rejects entries missing required fields", func(t *testing.T) {
		t.Parallel()

		l := audit.NewLogger(audit.NewMemoryStorage())

		entry := validEntry()
		entry.EntityID = ""
		err := l.LogSuccess(context.Background(), entry)
		assert.ErrorIs(t, err, audit.ErrEntryValidation)
	})

	t.Run("subject extractor attributes the entry", func(t *testing.T) {
		t.Parallel()

		storage := audit.NewMemoryStorage()
		l := audit.NewLogger(storage, audit.WithSubjectExtractor(
			func(ctx context.Context) (string, string, bool) {
				return "user-9", "user", true
			}))

		require.NoError(t, l.LogSuccess(context.Background(), validEntry()))

		entries, _ := storage.List(context.Background(), "Order", "1", "status")
		require.Len(t, entries, 1)
		assert.Equal(t, "user-9", entries[0].SubjectID)
		assert.Equal(t, "user", entries[0].SubjectType)
	})
}

func TestMemoryStorage(t *testing.T) {
	t.Parallel()

	t.Run("lists entries in occurrence order per entity key", func(t *testing.T) {
		t.Parallel()

		storage := audit.NewMemoryStorage()
		base := time.Now()

		for i, to := range []string{"pending", "processing", "completed"} {
			entry := validEntry()
			entry.ID = to
			entry.ToState = to
			entry.CreatedAt = base.Add(time.Duration(i) * time.Second)
			require.NoError(t, storage.Store(context.Background(), entry))
		}

		other := validEntry()
		other.EntityID = "2"
		other.CreatedAt = base
		require.NoError(t, storage.Store(context.Background(), other))

		entries, err := storage.List(context.Background(), "Order", "1", "status")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "pending", entries[0].ToState)
		assert.Equal(t, "completed", entries[2].ToState)
	})

	t.Run("unknown key yields empty list", func(t *testing.T) {
		t.Parallel()

		storage := audit.NewMemoryStorage()
		entries, err := storage.List(context.Background(), "Order", "missing", "status")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
