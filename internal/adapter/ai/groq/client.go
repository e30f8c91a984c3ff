// Package groq implements domain.ChatClient against Groq's OpenAI-compatible
// chat completions API.
package groq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-matcher/internal/adapter/ai/tokencount"
	"github.com/fairyhunter13/resume-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/resume-matcher/internal/config"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
)

const (
	provider   = "groq"
	opChat     = "chat"
	maxSnippet = 512
)

// Client issues one chat completion per call. It never retries.
type Client struct {
	cfg    config.Config
	hc     *http.Client
	tokens *tokencount.Counter
}

// New constructs a Groq client. cfg.GroqTimeout of zero means no client-side timeout.
func New(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		hc: &http.Client{
			Timeout:   cfg.GroqTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokencount.NewCounter(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) endpoint() string {
	return strings.TrimRight(c.cfg.GroqBaseURL, "/") + "/chat/completions"
}

// Complete sends prompt as a single user message and returns choices[0].message.content.
func (c *Client) Complete(ctx domain.Context, prompt string) (string, error) {
	lg := observability.LoggerFromContext(ctx)
	// Read the credential at call time.
	if !c.cfg.HasGroqCredential() {
		return "", fmt.Errorf("%w: GROQ_API_KEY missing", domain.ErrInvalidArgument)
	}

	model := c.cfg.GroqModel
	promptTokens := c.tokens.CountUserPrompt(prompt, model)
	observability.ObservePromptTokens(provider, model, promptTokens)

	b, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.GroqTemperature,
		MaxTokens:   c.cfg.GroqMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("op=groq.Complete marshal: %w", err)
	}

	lg.Info("calling Groq API",
		slog.String("provider", provider),
		slog.String("model", model),
		slog.Int("prompt_tokens_est", promptTokens),
		slog.Int("max_tokens", c.cfg.GroqMaxTokens))

	start := time.Now()
	content, err := c.do(ctx, b)
	dur := time.Since(start)
	observability.ObserveAIRequest(provider, opChat, err, dur)
	if err != nil {
		return "", err
	}
	lg.Debug("Groq API call succeeded",
		slog.String("model", model),
		slog.Duration("duration", dur),
		slog.Int("content_len", len(content)))
	return content, nil
}

func (c *Client) do(ctx domain.Context, body []byte) (string, error) {
	lg := observability.LoggerFromContext(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("op=groq.Complete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.GroqAPIKey))

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("op=groq.Complete: %w: %v", domain.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("op=groq.Complete read body: %w: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(bodyBytes)
		if len(snippet) > maxSnippet {
			snippet = snippet[:maxSnippet]
		}
		lg.Warn("ai provider non-2xx",
			slog.String("provider", provider),
			slog.String("op", opChat),
			slog.Int("status", resp.StatusCode),
			slog.String("x_request_id", resp.Header.Get("X-Request-Id")),
			slog.String("body", snippet))
		return "", fmt.Errorf("op=groq.Complete: %w: chat status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return "", fmt.Errorf("op=groq.Complete decode: %w: %v", domain.ErrUpstream, err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("op=groq.Complete: %w: %v", domain.ErrUpstream, errNoContent)
	}
	return *out.Choices[0].Message.Content, nil
}

var errNoContent = errors.New("response has no choices[0].message.content")
