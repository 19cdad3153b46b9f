package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/promptgate/internal/domain"
)

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		err      error
	}{
		{name: "valid input", body: `{"input":"Hello"}`, expected: "Hello"},
		{name: "input kept untrimmed", body: `{"input":"  Hello "}`, expected: "  Hello "},
		{name: "extra fields ignored", body: `{"input":"Hi","lang":"fr"}`, expected: "Hi"},
		{name: "not json", body: `input=Hello`, err: domain.ErrInvalidRequest},
		{name: "empty body", body: ``, err: domain.ErrInvalidRequest},
		{name: "array body", body: `["Hello"]`, err: domain.ErrInvalidRequest},
		{name: "non string input", body: `{"input":42}`, err: domain.ErrInvalidRequest},
		{name: "trailing garbage", body: `{"input":"Hello"} x`, err: domain.ErrInvalidRequest},
		{name: "two objects", body: `{"input":"a"}{"input":"b"}`, err: domain.ErrInvalidRequest},
		{name: "trailing whitespace", body: "{\"input\":\"Hello\"}\n  ", expected: "Hello"},
		{name: "missing field", body: `{}`, err: domain.ErrMissingInput},
		{name: "null input", body: `{"input":null}`, err: domain.ErrMissingInput},
		{name: "empty input", body: `{"input":""}`, err: domain.ErrMissingInput},
		{name: "blank input", body: `{"input":"  \n"}`, err: domain.ErrMissingInput},
		{name: "null body", body: `null`, err: domain.ErrMissingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := domain.DecodeInput(strings.NewReader(tt.body))

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				require.Empty(t, input)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expected, input)
		})
	}
}
