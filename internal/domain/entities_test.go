package domain

import (
	"testing"
)

func TestSuggestionModeConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant SuggestionMode
		expected string
		degraded bool
	}{
		{"NoCredential", SuggestionModeNoCredential, "no_credential", true},
		{"Fallback", SuggestionModeFallback, "fallback", true},
		{"Live", SuggestionModeLive, "live", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.constant) != tt.expected {
				t.Errorf("Expected %s to be %q, got %q", tt.name, tt.expected, string(tt.constant))
			}
			if tt.constant.Degraded() != tt.degraded {
				t.Errorf("Expected %s Degraded() to be %v", tt.name, tt.degraded)
			}
		})
	}
}
