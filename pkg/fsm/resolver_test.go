package fsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

func orderDefinition() *fsm.Definition {
	return &fsm.Definition{
		EntityType: "Order",
		Attribute:  "status",
		Transitions: []fsm.Transition{
			{From: nil, To: fsm.StringState("pending")},
			{From: fsm.StringState("pending"), To: fsm.StringState("processing"), Event: "start"},
			{From: fsm.StringState("processing"), To: fsm.StringState("completed"), Event: "finish"},
			{From: fsm.Wildcard, To: fsm.StringState("cancelled"), Event: "cancel"},
		},
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("exact match", func(t *testing.T) {
		t.Parallel()

		def := orderDefinition()
		tr, err := def.Resolve(fsm.StringState("pending"), fsm.StringState("processing"))
		require.NoError(t, err)
		assert.Equal(t, "start", tr.Event)
	})

	t.Run("nil from-state matches initial transition", func(t *testing.T) {
		t.Parallel()

		def := orderDefinition()
		tr, err := def.Resolve(nil, fsm.StringState("pending"))
		require.NoError(t, err)
		assert.Nil(t, tr.From)
	})

	t.Run("wildcard matches any current state", func(t *testing.T) {
		t.Parallel()

		def := orderDefinition()
		tr, err := def.Resolve(fsm.StringState("processing"), fsm.StringState("cancelled"))
		require.NoError(t, err)
		assert.True(t, fsm.IsWildcard(tr.From))
	})

	t.Run("exact match wins over wildcard regardless of declaration order", func(t *testing.T) {
		t.Parallel()

		def := &fsm.Definition{
			Transitions: []fsm.Transition{
				{From: fsm.Wildcard, To: fsm.StringState("archived"), Event: "wildcard"},
				{From: fsm.StringState("done"), To: fsm.StringState("archived"), Event: "exact"},
			},
		}
		tr, err := def.Resolve(fsm.StringState("done"), fsm.StringState("archived"))
		require.NoError(t, err)
		assert.Equal(t, "exact", tr.Event)
	})

	t.Run("duplicate pair resolves to first declared", func(t *testing.T) {
		t.Parallel()

		def := &fsm.Definition{
			Transitions: []fsm.Transition{
				{From: fsm.StringState("a"), To: fsm.StringState("b"), Event: "first"},
				{From: fsm.StringState("a"), To: fsm.StringState("b"), Event: "second"},
			},
		}
		tr, err := def.Resolve(fsm.StringState("a"), fsm.StringState("b"))
		require.NoError(t, err)
		assert.Equal(t, "first", tr.Event)
	})

	t.Run("no declared transition", func(t *testing.T) {
		t.Parallel()

		def := orderDefinition()
		_, err := def.Resolve(fsm.StringState("completed"), fsm.StringState("processing"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fsm.ErrNoTransition)
		assert.True(t, fsm.IsNoTransitionError(err))

		var nte *fsm.NoTransitionError
		require.ErrorAs(t, err, &nte)
		assert.Equal(t, "completed", nte.FromState)
		assert.Equal(t, "processing", nte.ToState)
	})
}

func TestStateEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, fsm.Equal(fsm.StringState("a"), fsm.StringState("a")))
	assert.False(t, fsm.Equal(fsm.StringState("a"), fsm.StringState("b")))
	assert.True(t, fsm.Equal(nil, nil))
	assert.False(t, fsm.Equal(fsm.StringState("a"), nil))
	assert.False(t, fsm.Equal(nil, fsm.StringState("a")))
}
