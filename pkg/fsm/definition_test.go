package fsm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

func TestNewHook(t *testing.T) {
	t.Parallel()

	inline := dispatch.NewFunc(func(context.Context, map[string]any) (any, error) {
		return nil, nil
	})

	t.Run("queued static hook allowed", func(t *testing.T) {
		t.Parallel()

		h, err := fsm.NewHook("notify", dispatch.Static("OrderNotifier", "SendEmail"), true)
		require.NoError(t, err)
		assert.True(t, h.Queued)
	})

	t.Run("queued inline hook rejected at definition time", func(t *testing.T) {
		t.Parallel()

		_, err := fsm.NewHook("notify", inline, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, fsm.ErrNotQueueable)
	})

	t.Run("queued bound hook rejected at definition time", func(t *testing.T) {
		t.Parallel()

		recv := struct{ name string }{"x"}
		bound := dispatch.Bound(recv, "Send", func(context.Context, map[string]any) (any, error) {
			return nil, nil
		})
		_, err := fsm.NewHook("notify", bound, true)
		assert.ErrorIs(t, err, fsm.ErrNotQueueable)
	})

	t.Run("synchronous hooks accept any shape", func(t *testing.T) {
		t.Parallel()

		_, err := fsm.NewHook("log", inline, false)
		assert.NoError(t, err)
	})
}

func TestSortGuards(t *testing.T) {
	t.Parallel()

	guards := []fsm.Guard{
		{Label: "c", Priority: 5},
		{Label: "a", Priority: 1},
		{Label: "b", Priority: 5},
		{Label: "d", Priority: 0},
	}

	sorted := fsm.SortGuards(guards)

	labels := make([]string, 0, len(sorted))
	for _, g := range sorted {
		labels = append(labels, g.Label)
	}
	// Equal priorities keep declaration order.
	assert.Equal(t, []string{"d", "a", "c", "b"}, labels)
	// Input untouched.
	assert.Equal(t, "c", guards[0].Label)
}
