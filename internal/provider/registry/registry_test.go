package registry_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/provider/registry"
)

// stubBackend is a minimal domain.Backend for registry tests.
type stubBackend struct {
	name string
}

func (s *stubBackend) Complete(_ context.Context, _ *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	return &domain.CompletionResponse{}, nil
}

func (s *stubBackend) Name() string {
	return s.name
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register backend successfully", func(t *testing.T) {
		reg := registry.NewRegistry()
		ctx := context.Background()

		err := reg.Register(ctx, &stubBackend{name: "inference"})
		require.NoError(t, err)

		registered, err := reg.Get(ctx, "inference")
		require.NoError(t, err)
		require.Equal(t, "inference", registered.Name())
	})

	t.Run("should return error when backend is nil", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(context.Background(), nil)

		require.Error(t, err)
		require.Contains(t, err.Error(), "backend cannot be nil")
	})

	t.Run("should return error when backend name is empty", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(context.Background(), &stubBackend{name: ""})

		require.Error(t, err)
		require.Contains(t, err.Error(), "backend name cannot be empty")
	})

	t.Run("should return error when backend already registered", func(t *testing.T) {
		reg := registry.NewRegistry()
		ctx := context.Background()

		require.NoError(t, reg.Register(ctx, &stubBackend{name: "openai"}))
		err := reg.Register(ctx, &stubBackend{name: "openai"})

		require.Error(t, err)
		require.Contains(t, err.Error(), "already registered")
	})
}

func TestRegistry_Get(t *testing.T) {
	t.Run("should return not found for unknown backend", func(t *testing.T) {
		reg := registry.NewRegistry()

		backend, err := reg.Get(context.Background(), "missing")

		require.ErrorIs(t, err, registry.ErrBackendNotFound)
		require.Nil(t, backend)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		reg := registry.NewRegistry()

		backend, err := reg.Get(context.Background(), "")

		require.Error(t, err)
		require.Nil(t, backend)
	})
}

func TestRegistry_List(t *testing.T) {
	reg := registry.NewRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Register(ctx, &stubBackend{name: fmt.Sprintf("backend-%d", i)})
		}()
	}
	wg.Wait()

	names, err := reg.List(ctx)

	require.NoError(t, err)
	require.Len(t, names, 10)
	require.Equal(t, "backend-0", names[0])
}
