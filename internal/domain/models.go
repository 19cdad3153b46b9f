package domain

import "time"

// Message roles understood by every backend.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// SamplingConfig holds the generation parameters sent to a backend.
type SamplingConfig struct {
	MaxTokens        int     `json:"max_tokens"`
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"top_p"`
	PresencePenalty  float64 `json:"presence_penalty"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
}

// FixedSampling returns the sampling parameters used for every completion.
func FixedSampling() SamplingConfig {
	return SamplingConfig{
		MaxTokens:        2048,
		Temperature:      0.8,
		TopP:             0.1,
		PresencePenalty:  0.0,
		FrequencyPenalty: 0.0,
	}
}

// CompletionRequest is one call to a completion backend.
type CompletionRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Sampling SamplingConfig `json:"sampling"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, system
	Content string `json:"content"`
}

// CompletionResponse is the backend result mapped to domain types.
type CompletionResponse struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Backend    string    `json:"backend"`
	Choices    []Choice  `json:"choices"`
	Usage      Usage     `json:"usage"`
	FinishTime time.Time `json:"finish_time"`
}

// Choice is one candidate completion.
type Choice struct {
	Index        int    `json:"index"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
