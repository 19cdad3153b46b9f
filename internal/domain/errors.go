package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates the request body is not a parseable JSON object.
	ErrInvalidRequest = errors.New("invalid request body")

	// ErrMissingInput indicates the input field is absent or empty.
	ErrMissingInput = errors.New("input is required")

	// ErrPlaceholderMissing indicates a template without the input placeholder.
	ErrPlaceholderMissing = errors.New("template does not contain placeholder " + InputPlaceholder)
)

// BackendError wraps a failed call to a completion backend.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a required setting that is absent at startup.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration error: %s is required", e.Field)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}
