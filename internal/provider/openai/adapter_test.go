package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/provider/openai"
)

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-4o-mini",
	"choices": [
		{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Bonjour"}},
		{"index": 1, "finish_reason": "stop", "message": {"role": "assistant", "content": "Salut"}}
	],
	"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
}`

func newRequest() *domain.CompletionRequest {
	return &domain.CompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: domain.SystemInstruction},
			{Role: domain.RoleUser, Content: "Translate: Hello"},
		},
		Sampling: domain.FixedSampling(),
	}
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) *openai.Backend {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend, err := openai.NewBackend(openai.Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/v1",
		Timeout:    5,
		MaxRetries: 0,
	})
	require.NoError(t, err)
	return backend
}

func TestNewBackend_Success(t *testing.T) {
	backend, err := openai.NewBackend(openai.Config{
		APIKey:     "test-api-key",
		BaseURL:    "https://api.openai.com/v1",
		Timeout:    60,
		MaxRetries: 0,
	})

	require.NoError(t, err)
	require.NotNil(t, backend)
	require.Equal(t, "openai", backend.Name())
}

func TestNewBackend_MissingAPIKey(t *testing.T) {
	backend, err := openai.NewBackend(openai.Config{
		APIKey:  "",
		BaseURL: "https://api.openai.com/v1",
	})

	require.Error(t, err)
	require.Nil(t, backend)
	require.Contains(t, err.Error(), "OpenAI API key is required")
}

func TestBackend_Complete(t *testing.T) {
	t.Run("should send messages and every sampling parameter", func(t *testing.T) {
		var payload map[string]any
		backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/chat/completions", r.URL.Path)
			require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &payload))

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, completionBody)
		})

		resp, err := backend.Complete(context.Background(), newRequest())
		require.NoError(t, err)

		require.Equal(t, "gpt-4o-mini", payload["model"])
		require.InDelta(t, 2048, payload["max_tokens"], 0)
		require.InDelta(t, 0.8, payload["temperature"], 0)
		require.InDelta(t, 0.1, payload["top_p"], 0)
		require.Contains(t, payload, "presence_penalty")
		require.Contains(t, payload, "frequency_penalty")
		require.InDelta(t, 0.0, payload["presence_penalty"], 0)
		require.InDelta(t, 0.0, payload["frequency_penalty"], 0)

		messages, ok := payload["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)
		require.Equal(t, "system", messages[0].(map[string]any)["role"])
		require.Equal(t, "You are a helpful assistant.", messages[0].(map[string]any)["content"])
		require.Equal(t, "user", messages[1].(map[string]any)["role"])
		require.Equal(t, "Translate: Hello", messages[1].(map[string]any)["content"])

		require.Equal(t, "chatcmpl-1", resp.ID)
		require.Equal(t, "openai", resp.Backend)
		require.Len(t, resp.Choices, 2)
		require.Equal(t, "Bonjour", resp.Choices[0].Content)
		require.Equal(t, "stop", resp.Choices[0].FinishReason)
		require.Equal(t, 15, resp.Usage.TotalTokens)
	})

	t.Run("should map zero choices to empty slice", func(t *testing.T) {
		backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"chatcmpl-2","object":"chat.completion","model":"m","choices":[]}`)
		})

		resp, err := backend.Complete(context.Background(), newRequest())

		require.NoError(t, err)
		require.Empty(t, resp.Choices)
	})

	t.Run("should surface API errors", func(t *testing.T) {
		backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
		})

		resp, err := backend.Complete(context.Background(), newRequest())

		require.Error(t, err)
		require.Nil(t, resp)
		require.Contains(t, err.Error(), "OpenAI API call failed")
	})

	t.Run("should reject nil request", func(t *testing.T) {
		backend, err := openai.NewBackend(openai.Config{APIKey: "test-key"})
		require.NoError(t, err)

		resp, err := backend.Complete(context.Background(), nil)

		require.Error(t, err)
		require.Nil(t, resp)
		require.Contains(t, err.Error(), "request cannot be nil")
	})
}
