package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
)

type notifier struct{ sent int }

func (n *notifier) send(_ context.Context, _ map[string]any) (any, error) {
	n.sent++
	return nil, nil
}

func TestCallableRef(t *testing.T) {
	t.Parallel()

	t.Run("static reference renders portable form", func(t *testing.T) {
		t.Parallel()

		c := dispatch.Static("OrderNotifier", "SendShippedEmail")
		ref, err := c.Ref()
		require.NoError(t, err)
		assert.Equal(t, "OrderNotifier@SendShippedEmail", ref)
		assert.True(t, c.Queueable())
	})

	t.Run("bound reference is refused", func(t *testing.T) {
		t.Parallel()

		n := &notifier{}
		c := dispatch.Bound(n, "send", n.send)
		_, err := c.Ref()
		require.Error(t, err)
		assert.ErrorIs(t, err, dispatch.ErrBoundReference)
		assert.False(t, c.Queueable())
	})

	t.Run("inline function is refused", func(t *testing.T) {
		t.Parallel()

		c := dispatch.NewFunc(func(context.Context, map[string]any) (any, error) {
			return true, nil
		})
		_, err := c.Ref()
		require.Error(t, err)
		assert.ErrorIs(t, err, dispatch.ErrInlineReference)
		assert.False(t, c.Queueable())
	})
}

func TestParseRef(t *testing.T) {
	t.Parallel()

	t.Run("valid reference round-trips", func(t *testing.T) {
		t.Parallel()

		c, err := dispatch.ParseRef("OrderNotifier@SendShippedEmail")
		require.NoError(t, err)
		assert.Equal(t, dispatch.KindStatic, c.Kind())

		ref, err := c.Ref()
		require.NoError(t, err)
		assert.Equal(t, "OrderNotifier@SendShippedEmail", ref)
	})

	t.Run("malformed references rejected", func(t *testing.T) {
		t.Parallel()

		for _, ref := range []string{"", "NoSeparator", "@Method", "Type@"} {
			_, err := dispatch.ParseRef(ref)
			assert.ErrorIs(t, err, dispatch.ErrInvalidRef, "ref %q", ref)
		}
	})
}
