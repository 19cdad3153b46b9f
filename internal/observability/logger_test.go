package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/promptgate/internal/observability"
)

func TestInitLogger(t *testing.T) {
	t.Run("should build logger with configured level", func(t *testing.T) {
		logger, err := observability.InitLogger(&observability.LogConfig{Level: "debug"})

		require.NoError(t, err)
		require.NotNil(t, logger)
		require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should reject unknown level", func(t *testing.T) {
		logger, err := observability.InitLogger(&observability.LogConfig{Level: "loud"})

		require.Error(t, err)
		require.Nil(t, logger)
		require.Contains(t, err.Error(), "invalid log level")
	})
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	observability.SetLogger(zap.New(core))
	t.Cleanup(func() { observability.SetLogger(nil) })

	ctx := observability.WithRequestID(context.Background(), "req-1")
	ctx = observability.WithBackend(ctx, "echo")

	observability.FromContext(ctx).Info("hello", observability.Int("n", 1))

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "echo", fields["backend"])
	require.EqualValues(t, 1, fields["n"])
	require.NotContains(t, fields, "trace_id")
}
