// Package tika provides Apache Tika integration for text extraction.
//
// The server at TIKA_URL does the parsing; this client only uploads the
// document bytes and normalizes the plain text it gets back.
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/pkg/textx"
)

// Backend is the metrics label for this extractor.
const Backend = "tika"

const defaultBaseURL = "http://localhost:9998"

// Client is a minimal Apache Tika HTTP client implementing domain.TextExtractor.
// It performs PUT /tika with Accept: text/plain to retrieve extracted text.
// See: https://tika.apache.org/server/ for API details.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Tika client with a default timeout.
func New(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

// Extract uploads data to the Tika server and returns plain text with
// whitespace runs collapsed to single spaces.
func (c *Client) Extract(ctx domain.Context, fileName string, data []byte) (text string, err error) {
	defer func() {
		observability.ObserveExtraction(Backend, err)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("tika extraction failed",
				slog.String("file", fileName), slog.Any("error", err))
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("op=tika.Extract file=%s: %w: empty file", fileName, domain.ErrExtractFailed)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	if ct := contentTypeFromExt(filepath.Ext(fileName)); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract file=%s: %w: %v", fileName, domain.ErrExtractFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("op=tika.Extract file=%s: %w: tika status %d", fileName, domain.ErrExtractFailed, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("op=tika.Extract file=%s: %w: %v", fileName, domain.ErrExtractFailed, err)
	}

	// Sanitize control characters and then collapse all whitespace to single spaces
	out := strings.Join(strings.Fields(textx.SanitizeText(string(b))), " ")
	if out == "" {
		return "", fmt.Errorf("op=tika.Extract file=%s: %w: no text found", fileName, domain.ErrExtractFailed)
	}
	return out, nil
}

// Ping checks that the Tika server answers GET /version.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return fmt.Errorf("op=tika.Ping: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("op=tika.Ping: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("op=tika.Ping: tika status %d", resp.StatusCode)
	}
	return nil
}

func contentTypeFromExt(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".pdf":
		return "application/pdf"
	case "":
		return ""
	default:
		return mime.TypeByExtension(ext)
	}
}
