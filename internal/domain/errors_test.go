package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorConstants(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrUnsupportedMedia", ErrUnsupportedMedia, "unsupported media type"},
		{"ErrPayloadTooLarge", ErrPayloadTooLarge, "payload too large"},
		{"ErrExtractFailed", ErrExtractFailed, "extract failed"},
		{"ErrUpstream", ErrUpstream, "upstream error"},
		{"ErrInternal", ErrInternal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected %s to be %q, got %q", tt.name, tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorIs_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("op=analyze: %w", ErrInvalidArgument)
	if !errors.Is(wrapped, ErrInvalidArgument) {
		t.Fatalf("expected wrapped error to match ErrInvalidArgument")
	}
	if errors.Is(wrapped, ErrUpstream) {
		t.Fatalf("did not expect wrapped error to match ErrUpstream")
	}
}
