// Package tokencount estimates prompt sizes for chat-completion calls.
//
// It uses tiktoken-go with the offline BPE loader, so counting never reaches
// the network. Non-OpenAI models (Llama on Groq) are approximated with the
// cl100k_base encoding.
package tokencount

import (
	"log/slog"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const fallbackEncoding = "cl100k_base"

var loaderOnce sync.Once

// Counter provides thread-safe token counting for LLM models.
type Counter struct {
	encodingCache map[string]*tiktoken.Tiktoken
	mu            sync.RWMutex
}

// NewCounter creates a new token counter instance.
func NewCounter() *Counter {
	loaderOnce.Do(func() { tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader()) })
	return &Counter{encodingCache: make(map[string]*tiktoken.Tiktoken)}
}

func (c *Counter) encodingFor(model string) (*tiktoken.Tiktoken, error) {
	name := normalizeModelName(model)

	c.mu.RLock()
	enc, ok := c.encodingCache[name]
	c.mu.RUnlock()
	if ok {
		return enc, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if enc, ok := c.encodingCache[name]; ok {
		return enc, nil
	}
	enc, err := tiktoken.EncodingForModel(name)
	if err != nil {
		slog.Debug("falling back to cl100k_base encoding", slog.String("model", model), slog.Any("error", err))
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, err
		}
	}
	c.encodingCache[name] = enc
	return enc, nil
}

// normalizeModelName maps provider model IDs onto tiktoken-known names.
func normalizeModelName(model string) string {
	model = strings.ToLower(model)
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	if strings.Contains(model, "gpt-3.5") {
		return "gpt-3.5-turbo"
	}
	// gpt-4, llama, mixtral, gemma and unknown families all map to cl100k_base.
	return "gpt-4"
}

// CountTokens counts the tokens of text for model.
func (c *Counter) CountTokens(text, model string) (int, error) {
	enc, err := c.encodingFor(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// CountUserPrompt estimates the prompt tokens of a single user-role chat
// message, including per-message framing. On encoder failure it falls back
// to roughly four characters per token.
func (c *Counter) CountUserPrompt(prompt, model string) int {
	enc, err := c.encodingFor(model)
	if err != nil {
		slog.Warn("token count unavailable, using estimate", slog.String("model", model), slog.Any("error", err))
		return len(prompt) / 4
	}
	const tokensPerMessage, tokensPerRole, replyPriming = 3, 1, 3
	n := tokensPerMessage + tokensPerRole + replyPriming
	n += len(enc.Encode("user", nil, nil))
	n += len(enc.Encode(prompt, nil, nil))
	return n
}
