// Package pdf extracts plain text from PDF documents in-process.
package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/fairyhunter13/resume-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/pkg/textx"
)

// Backend is the metrics label for this extractor.
const Backend = "pdf"

// Extractor implements domain.TextExtractor on top of github.com/ledongthuc/pdf.
type Extractor struct{}

// New returns a local PDF extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns the text of every page, each followed by a newline.
func (e *Extractor) Extract(ctx domain.Context, fileName string, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("op=pdf.Extract file=%s: %w: panic: %v", fileName, domain.ErrExtractFailed, r)
		}
		observability.ObserveExtraction(Backend, err)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("pdf extraction failed",
				slog.String("file", fileName), slog.Any("error", err))
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("op=pdf.Extract file=%s: %w: empty file", fileName, domain.ErrExtractFailed)
	}
	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("op=pdf.Extract file=%s: %w: %v", fileName, domain.ErrExtractFailed, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("op=pdf.Extract file=%s: %w: %v", fileName, domain.ErrExtractFailed, err)
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pt, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("op=pdf.Extract file=%s page=%d: %w: %v", fileName, i, domain.ErrExtractFailed, err)
		}
		sb.WriteString(textx.SanitizeText(pt))
		sb.WriteString("\n")
	}

	out := sb.String()
	if textx.IsBlank(out) {
		return "", fmt.Errorf("op=pdf.Extract file=%s: %w: no text found", fileName, domain.ErrExtractFailed)
	}
	return out, nil
}
