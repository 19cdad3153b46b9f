package domain

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// inputBody is the recognized shape of an incoming request body.
type inputBody struct {
	Input *string `json:"input"`
}

// DecodeInput reads a JSON object body and returns its input field.
// Unparseable bodies, including trailing data after the object, yield ErrInvalidRequest, absent or blank input yields
// ErrMissingInput. The returned input is not trimmed.
func DecodeInput(r io.Reader) (string, error) {
	var body inputBody
	dec := json.NewDecoder(r)
	if err := dec.Decode(&body); err != nil {
		return "", ErrInvalidRequest
	}

	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return "", ErrInvalidRequest
	}

	if body.Input == nil || strings.TrimSpace(*body.Input) == "" {
		return "", ErrMissingInput
	}

	return *body.Input, nil
}
