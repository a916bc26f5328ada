package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/engine"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// rigidPayload cannot be rebuilt from a filtered field set.
type rigidPayload struct {
	secret string
}

func (p rigidPayload) ToMap() map[string]any {
	return map[string]any{"secret": p.secret, "public": "ok"}
}

func TestRedactor(t *testing.T) {
	t.Parallel()

	t.Run("nil payload passes through", func(t *testing.T) {
		t.Parallel()

		r := engine.NewRedactor([]string{"secret"}, nil)
		assert.Nil(t, r.Redact(nil))
	})

	t.Run("empty exclusion list returns the same instance", func(t *testing.T) {
		t.Parallel()

		p := fsm.MapPayload{"secret": "x"}
		r := engine.NewRedactor(nil, nil)
		got := r.Redact(p)
		require.NotNil(t, got)
		assert.Equal(t, p.ToMap(), got.ToMap())
	})

	t.Run("excluded fields removed case-insensitively", func(t *testing.T) {
		t.Parallel()

		p := fsm.MapPayload{"Card_Number": "4111", "reason": "payment"}
		r := engine.NewRedactor([]string{"card_number"}, nil)
		got := r.Redact(p)
		require.NotNil(t, got)
		assert.Equal(t, map[string]any{"reason": "payment"}, got.ToMap())
	})

	t.Run("unrebuildable payload degrades to the original", func(t *testing.T) {
		t.Parallel()

		p := rigidPayload{secret: "x"}
		r := engine.NewRedactor([]string{"secret"}, nil)
		got := r.Redact(p)
		// Degradation keeps the full original rather than dropping the log.
		assert.Equal(t, p.ToMap(), got.ToMap())
	})
}
