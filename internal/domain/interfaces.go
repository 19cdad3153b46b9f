package domain

import "context"

// Backend represents any chat-completion service.
type Backend interface {
	// Complete submits the messages and sampling parameters and returns every choice.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the backend identifier.
	Name() string
}

// BackendRegistry manages available backends.
type BackendRegistry interface {
	// Register adds a backend to the registry.
	Register(ctx context.Context, backend Backend) error

	// Get retrieves a backend by name.
	Get(ctx context.Context, name string) (Backend, error)

	// List returns the names of all registered backends.
	List(ctx context.Context) ([]string, error)
}

// TemplateStore loads the prompt template.
type TemplateStore interface {
	// Load reads the template and its sidecar settings.
	Load(ctx context.Context) (*PromptTemplate, error)
}
