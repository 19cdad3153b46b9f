package domain

import "strings"

// InputPlaceholder is replaced with the caller's input when rendering.
const InputPlaceholder = "{{input}}"

// PromptTemplate is static prompt text with one substitution point.
// It is immutable after construction.
type PromptTemplate struct {
	name        string
	text        string
	description string
	defaults    *SamplingConfig
}

// TemplateOption configures optional template metadata.
type TemplateOption func(*PromptTemplate)

// WithDescription attaches a human readable description.
func WithDescription(description string) TemplateOption {
	return func(t *PromptTemplate) {
		t.description = description
	}
}

// WithDefaults attaches sampling defaults read from a sidecar record.
// They are informational and never override FixedSampling.
func WithDefaults(defaults SamplingConfig) TemplateOption {
	return func(t *PromptTemplate) {
		t.defaults = &defaults
	}
}

// NewPromptTemplate validates text and returns an immutable template.
func NewPromptTemplate(name, text string, opts ...TemplateOption) (*PromptTemplate, error) {
	if !strings.Contains(text, InputPlaceholder) {
		return nil, ErrPlaceholderMissing
	}

	t := &PromptTemplate{
		name:        name,
		text:        text,
		description: "",
		defaults:    nil,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Render replaces every placeholder occurrence with input. No other
// template syntax is interpreted.
func (t *PromptTemplate) Render(input string) string {
	return strings.ReplaceAll(t.text, InputPlaceholder, input)
}

// Name returns the template identifier.
func (t *PromptTemplate) Name() string {
	return t.name
}

// Text returns the raw template text.
func (t *PromptTemplate) Text() string {
	return t.text
}

// Description returns the sidecar description, if any.
func (t *PromptTemplate) Description() string {
	return t.description
}

// Defaults returns the sidecar sampling defaults and whether any were present.
func (t *PromptTemplate) Defaults() (SamplingConfig, bool) {
	if t.defaults == nil {
		return SamplingConfig{}, false
	}
	return *t.defaults, true
}
