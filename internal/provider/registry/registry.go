package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/promptgate/internal/domain"
)

// ErrBackendNotFound indicates no backend is registered under a name.
var ErrBackendNotFound = errors.New("backend not found")

// Registry implements the BackendRegistry interface.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]domain.Backend
}

// NewRegistry creates a new backend registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:       sync.RWMutex{},
		backends: make(map[string]domain.Backend),
	}
}

// Register adds a backend to the registry.
func (r *Registry) Register(_ context.Context, backend domain.Backend) error {
	if backend == nil {
		return errors.New("backend cannot be nil")
	}

	name := backend.Name()
	if name == "" {
		return errors.New("backend name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("backend %s already registered", name)
	}

	r.backends[name] = backend

	return nil
}

// Get retrieves a backend by name.
func (r *Registry) Get(_ context.Context, name string) (domain.Backend, error) {
	if name == "" {
		return nil, errors.New("backend name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	backend, exists := r.backends[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, name)
	}

	return backend, nil
}

// List returns all registered backend names in sorted order.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
