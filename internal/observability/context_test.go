package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptgate/internal/observability"
)

func TestContextValues(t *testing.T) {
	t.Run("should return empty values for bare context", func(t *testing.T) {
		ctx := context.Background()

		require.Empty(t, observability.GetTraceID(ctx))
		require.Empty(t, observability.GetSpanID(ctx))
		require.Empty(t, observability.GetRequestID(ctx))
		require.Empty(t, observability.GetBackend(ctx))
		require.Empty(t, observability.GetModel(ctx))
	})

	t.Run("should round trip injected values", func(t *testing.T) {
		ctx := context.Background()
		ctx = observability.WithTraceID(ctx, "trace")
		ctx = observability.WithSpanID(ctx, "span")
		ctx = observability.WithRequestID(ctx, "req")
		ctx = observability.WithBackend(ctx, "inference")
		ctx = observability.WithModel(ctx, "Llama-3.3-70B-Instruct")

		require.Equal(t, "trace", observability.GetTraceID(ctx))
		require.Equal(t, "span", observability.GetSpanID(ctx))
		require.Equal(t, "req", observability.GetRequestID(ctx))
		require.Equal(t, "inference", observability.GetBackend(ctx))
		require.Equal(t, "Llama-3.3-70B-Instruct", observability.GetModel(ctx))
	})
}

func TestGenerateIDs(t *testing.T) {
	require.Len(t, observability.GenerateTraceID(), 32)
	require.Len(t, observability.GenerateSpanID(), 16)
	require.NotEqual(t, observability.GenerateRequestID(), observability.GenerateRequestID())
}
