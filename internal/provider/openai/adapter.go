// Package openai provides a backend adapter for OpenAI-compatible chat
// completion endpoints using the official SDK. It converts between domain
// types and SDK types and forwards every sampling parameter unchanged.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/observability"
)

const backendName = "openai"

// Backend implements the domain.Backend interface for OpenAI.
type Backend struct {
	client openai.Client
	name   string
}

// NewBackend creates a new OpenAI backend.
func NewBackend(config Config) (*Backend, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(config.MaxRetries),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Backend{
		client: openai.NewClient(opts...),
		name:   backendName,
	}, nil
}

// Complete sends a completion request and returns every choice.
func (b *Backend) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	resp, err := b.client.Chat.Completions.New(ctx, b.toSDKParams(req))
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	return b.toDomainResponse(resp), nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return b.name
}

// toSDKParams converts domain request to SDK ChatCompletionNewParams.
func (b *Backend) toSDKParams(req *domain.CompletionRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	// Zero penalties are sent explicitly; param.Opt distinguishes set from omitted.
	//nolint:exhaustruct // OpenAI SDK struct has many optional fields
	return openai.ChatCompletionNewParams{
		Model:            openai.ChatModel(req.Model),
		Messages:         messages,
		MaxTokens:        openai.Int(int64(req.Sampling.MaxTokens)),
		Temperature:      openai.Float(req.Sampling.Temperature),
		TopP:             openai.Float(req.Sampling.TopP),
		PresencePenalty:  openai.Float(req.Sampling.PresencePenalty),
		FrequencyPenalty: openai.Float(req.Sampling.FrequencyPenalty),
	}
}

// toDomainResponse converts SDK response to domain response.
func (b *Backend) toDomainResponse(resp *openai.ChatCompletion) *domain.CompletionResponse {
	choices := make([]domain.Choice, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, domain.Choice{
			Index:        int(choice.Index),
			Content:      choice.Message.Content,
			FinishReason: choice.FinishReason,
		})
	}

	return &domain.CompletionResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Backend: b.name,
		Choices: choices,
		Usage: domain.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		FinishTime: time.Now(),
	}
}
