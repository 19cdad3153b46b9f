package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/davidbz/promptgate/internal/observability"
)

const (
	// SystemInstruction is the system turn sent with every prompt.
	SystemInstruction = "You are a helpful assistant."

	// NoResponse is returned when the backend produces no choices.
	NoResponse = "No response"
)

// GatewayService renders input into the prompt template and forwards it
// to a completion backend. It holds no per-call state.
type GatewayService struct {
	backend  Backend
	template *PromptTemplate
	model    string
}

// NewGatewayService creates a new gateway service (DI constructor).
func NewGatewayService(backend Backend, template *PromptTemplate, model string) (*GatewayService, error) {
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}

	if template == nil {
		return nil, errors.New("template cannot be nil")
	}

	if model == "" {
		return nil, &ConfigurationError{Field: "model", Reason: ""}
	}

	return &GatewayService{
		backend:  backend,
		template: template,
		model:    model,
	}, nil
}

// Complete renders input, calls the backend once and returns the first
// choice's text verbatim.
func (g *GatewayService) Complete(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrMissingInput
	}

	ctx = observability.WithBackend(ctx, g.backend.Name())
	ctx = observability.WithModel(ctx, g.model)
	logger := observability.FromContext(ctx)

	req := g.buildRequest(input)

	logger.Debug("submitting prompt",
		observability.String("template", g.template.Name()),
		observability.Int("input_length", len(input)))

	resp, err := g.backend.Complete(ctx, req)
	if err != nil {
		logger.Error("backend call failed", observability.Error(err))
		return "", &BackendError{Backend: g.backend.Name(), Err: err}
	}

	if resp == nil || len(resp.Choices) == 0 {
		logger.Warn("backend returned no choices")
		return NoResponse, nil
	}

	logger.Info("completion succeeded",
		observability.Int("choices", len(resp.Choices)),
		observability.Int("tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Content, nil
}

// Template returns the template the gateway renders.
func (g *GatewayService) Template() *PromptTemplate {
	return g.template
}

// Model returns the configured model identifier.
func (g *GatewayService) Model() string {
	return g.model
}

// Backend returns the name of the configured backend.
func (g *GatewayService) Backend() string {
	return g.backend.Name()
}

// buildRequest constructs the two-message exchange for input.
func (g *GatewayService) buildRequest(input string) *CompletionRequest {
	return &CompletionRequest{
		Model: g.model,
		Messages: []Message{
			{Role: RoleSystem, Content: SystemInstruction},
			{Role: RoleUser, Content: g.template.Render(input)},
		},
		Sampling: FixedSampling(),
	}
}
