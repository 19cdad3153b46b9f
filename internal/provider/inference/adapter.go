// Package inference provides a backend adapter for Azure AI model inference
// chat completion endpoints, called over plain REST.
package inference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/observability"
)

const backendName = "inference"

// Backend implements the domain.Backend interface for model inference endpoints.
type Backend struct {
	client *Client
	name   string
}

// NewBackend creates a new inference backend.
func NewBackend(config Config) (*Backend, error) {
	if config.Endpoint == "" {
		return nil, errors.New("inference endpoint is required")
	}

	if config.APIKey == "" {
		return nil, errors.New("inference API key is required")
	}

	return &Backend{
		client: NewClient(config),
		name:   backendName,
	}, nil
}

// Complete sends a completion request and returns every choice.
func (b *Backend) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling inference API")

	resp, err := b.client.Complete(ctx, toWireRequest(req))
	if err != nil {
		return nil, fmt.Errorf("inference API call failed: %w", err)
	}

	logger.Debug("inference API call succeeded",
		observability.Int("prompt_tokens", resp.Usage.PromptTokens),
		observability.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return b.toDomainResponse(resp), nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return b.name
}

func toWireRequest(req *domain.CompletionRequest) chatRequest {
	messages := make([]chatMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = chatMessage{Role: msg.Role, Content: msg.Content}
	}

	return chatRequest{
		Model:            req.Model,
		Messages:         messages,
		MaxTokens:        req.Sampling.MaxTokens,
		Temperature:      req.Sampling.Temperature,
		TopP:             req.Sampling.TopP,
		PresencePenalty:  req.Sampling.PresencePenalty,
		FrequencyPenalty: req.Sampling.FrequencyPenalty,
	}
}

func (b *Backend) toDomainResponse(resp *chatResponse) *domain.CompletionResponse {
	choices := make([]domain.Choice, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		content := ""
		if choice.Message.Content != nil {
			content = *choice.Message.Content
		}
		choices = append(choices, domain.Choice{
			Index:        choice.Index,
			Content:      content,
			FinishReason: choice.FinishReason,
		})
	}

	return &domain.CompletionResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Backend: b.name,
		Choices: choices,
		Usage: domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		FinishTime: time.Now(),
	}
}
