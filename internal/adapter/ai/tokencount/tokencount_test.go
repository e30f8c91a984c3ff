package tokencount

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeModelName(t *testing.T) {
	cases := map[string]string{
		"llama-3.3-70b-versatile":               "gpt-4",
		"meta-llama/llama-3.1-8b-instruct:free": "gpt-4",
		"GPT-3.5-Turbo":                         "gpt-3.5-turbo",
		"openai/gpt-4o-mini":                    "gpt-4",
		"":                                      "gpt-4",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeModelName(in), in)
	}
}

func TestCountTokens(t *testing.T) {
	counter := NewCounter()

	tests := []struct {
		name     string
		text     string
		model    string
		minCount int
		maxCount int
	}{
		{"simple text", "Hello, world!", "gpt-4", 3, 5},
		{"longer text", "The quick brown fox jumps over the lazy dog.", "gpt-3.5-turbo", 8, 12},
		{"groq llama", "Testing token counting", "llama-3.3-70b-versatile", 3, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := counter.CountTokens(tt.text, tt.model)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, count, tt.minCount)
			assert.LessOrEqual(t, count, tt.maxCount)
		})
	}
}

func TestCountUserPrompt_AddsFraming(t *testing.T) {
	counter := NewCounter()
	prompt := strings.Repeat("resume keyword ", 50)
	raw, err := counter.CountTokens(prompt, "llama-3.3-70b-versatile")
	require.NoError(t, err)
	framed := counter.CountUserPrompt(prompt, "llama-3.3-70b-versatile")
	assert.Greater(t, framed, raw)
	assert.LessOrEqual(t, framed-raw, 10)
}

func TestCounter_CachesEncoding(t *testing.T) {
	counter := NewCounter()
	_, err := counter.CountTokens("a", "llama-3.3-70b-versatile")
	require.NoError(t, err)
	_, err = counter.CountTokens("b", "mixtral-8x7b")
	require.NoError(t, err)
	counter.mu.RLock()
	defer counter.mu.RUnlock()
	assert.Len(t, counter.encodingCache, 1)
}
