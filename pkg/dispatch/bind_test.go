package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/dispatch"
)

func TestBind(t *testing.T) {
	t.Parallel()

	t.Run("matches parameters by name", func(t *testing.T) {
		t.Parallel()

		params := []dispatch.Param{
			{Name: "entity", Type: dispatch.Any()},
			{Name: "to_state", Type: dispatch.Named("string")},
		}
		bag := map[string]any{
			"entity":   "order-1",
			"to_state": "shipped",
			"event":    "ship", // unmatched bag keys are ignored
		}

		args, err := dispatch.Bind(params, bag)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"entity": "order-1", "to_state": "shipped"}, args)
	})

	t.Run("optional parameter falls back to default", func(t *testing.T) {
		t.Parallel()

		params := []dispatch.Param{
			{Name: "mode", Type: dispatch.Named("string"), Default: "sync"},
		}

		args, err := dispatch.Bind(params, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "sync", args["mode"])
	})

	t.Run("optional parameter without default is omitted", func(t *testing.T) {
		t.Parallel()

		params := []dispatch.Param{
			{Name: "source", Type: dispatch.Named("string")},
		}

		args, err := dispatch.Bind(params, map[string]any{})
		require.NoError(t, err)
		assert.NotContains(t, args, "source")
	})

	t.Run("required parameter without value or default fails", func(t *testing.T) {
		t.Parallel()

		params := []dispatch.Param{
			{Name: "entity", Type: dispatch.Any(), Required: true},
		}

		_, err := dispatch.Bind(params, map[string]any{})
		require.Error(t, err)
		assert.ErrorIs(t, err, dispatch.ErrBindFailed)
		assert.True(t, dispatch.IsBindError(err))

		var bindErr *dispatch.BindError
		require.ErrorAs(t, err, &bindErr)
		assert.Equal(t, "entity", bindErr.Param)
	})

	t.Run("keyed payload to array-capable parameter", func(t *testing.T) {
		t.Parallel()

		params := []dispatch.Param{
			{Name: "context", Type: dispatch.Named("iterable")},
		}
		bag := map[string]any{"context": map[string]any{"reason": "test"}}

		args, err := dispatch.Bind(params, bag)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"reason": "test"}, args["context"])
	})

	t.Run("keyed payload to incompatible parameter fails", func(t *testing.T) {
		t.Parallel()

		params := []dispatch.Param{
			{Name: "context", Type: dispatch.Named("OrderContext")},
		}
		bag := map[string]any{"context": map[string]any{"reason": "test"}}

		_, err := dispatch.Bind(params, bag)
		require.Error(t, err)
		assert.True(t, dispatch.IsBindError(err))
	})

	t.Run("nil value binds without type check", func(t *testing.T) {
		t.Parallel()

		params := []dispatch.Param{
			{Name: "from_state", Type: dispatch.Named("string")},
		}
		bag := map[string]any{"from_state": nil}

		args, err := dispatch.Bind(params, bag)
		require.NoError(t, err)
		assert.Contains(t, args, "from_state")
		assert.Nil(t, args["from_state"])
	})
}
