// Package echo provides an offline backend that answers with the user turn.
// It implements the domain.Backend interface without making external API calls,
// giving deterministic responses for local development and tests.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/observability"
)

const backendName = "echo"

// Backend implements the domain.Backend interface for echo testing.
type Backend struct {
	name string
}

// NewBackend creates a new echo backend.
// No configuration is required as this backend operates entirely in-memory.
func NewBackend() *Backend {
	return &Backend{
		name: backendName,
	}
}

// Complete returns the last user message as the single choice. A request
// without a user turn yields zero choices.
func (b *Backend) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("echoing request")

	choices := []domain.Choice{}
	promptTokens := 0
	for _, msg := range req.Messages {
		promptTokens += countTokens(msg.Content)
	}

	if content, ok := lastUserContent(req.Messages); ok {
		choices = append(choices, domain.Choice{
			Index:        0,
			Content:      content,
			FinishReason: "stop",
		})
	}

	completionTokens := 0
	if len(choices) > 0 {
		completionTokens = countTokens(choices[0].Content)
	}

	return &domain.CompletionResponse{
		ID:      fmt.Sprintf("echo-%d", time.Now().UnixNano()),
		Model:   req.Model,
		Backend: b.name,
		Choices: choices,
		Usage: domain.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
		FinishTime: time.Now(),
	}, nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return b.name
}

func lastUserContent(messages []domain.Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return messages[i].Content, true
		}
	}
	return "", false
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Fields(content))
}
