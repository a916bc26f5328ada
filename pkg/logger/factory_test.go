package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to json at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Debug("hidden")
		log.Info("visible", slog.String("key", "value"))

		out := buf.String()
		assert.NotContains(t, out, "hidden")

		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &record))
		assert.Equal(t, "visible", record["msg"])
		assert.Equal(t, "value", record["key"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("development preset enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithDevelopment("fsmkit"))
		log.Debug("debugging")

		out := buf.String()
		assert.Contains(t, out, "debugging")
		assert.Contains(t, out, "service=fsmkit")
		assert.Contains(t, out, "env=development")
	})

	t.Run("static attributes appear on every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithAttr(logger.Component("engine")))
		log.Info("one")
		log.Info("two")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Contains(t, line, `"component":"engine"`)
		}
	})

	t.Run("context value extraction", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithContextValue("request_id", ctxKey{}))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "with value")
		log.Info("without value")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"request_id":"req-1"`)
		assert.NotContains(t, lines[1], "request_id")
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "entity_type", logger.EntityType("Order").Key)
	assert.Equal(t, "from_state", logger.FromState("pending").Key)
	assert.Equal(t, slog.Attr{}, logger.FromState(nil))
	assert.Equal(t, "to_state", logger.ToState("processing").Key)
}
