package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/resume-matcher/internal/config"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/internal/usecase"
)

const (
	maxAnalyzeBody  = 1 << 20
	multipartSlack  = 1 << 20
	pdfMIME         = "application/pdf"
	uploadFormField = "file"
)

// Server aggregates handlers dependencies.
type Server struct {
	Cfg        config.Config
	Analyze    usecase.AnalyzeService
	Extractor  domain.TextExtractor
	Vocabulary domain.Vocabulary
	TikaCheck  func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, analyze usecase.AnalyzeService, extractor domain.TextExtractor, vocab domain.Vocabulary, tikaCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Analyze: analyze, Extractor: extractor, Vocabulary: vocab, TikaCheck: tikaCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// notAcceptable writes 406 and reports true when the client refuses JSON.
func notAcceptable(w http.ResponseWriter, r *http.Request) bool {
	a := r.Header.Get("Accept")
	if a == "" || a == "*/*" || strings.Contains(a, "application/json") {
		return false
	}
	writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{
		Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]any{"accept": a},
	}})
	return true
}

type analyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,max=100000"`
	JobDescription string `json:"job_description" validate:"required,max=100000"`
}

// AnalyzeHandler scores a resume against a job description and returns suggestions.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBody)
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeError(w, r, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrPayloadTooLarge, mbe.Limit), nil)
				return
			}
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				for _, fe := range ve {
					verrs[jsonFieldName(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: provide both resume and job description", domain.ErrInvalidArgument), verrs)
			return
		}

		res, err := s.Analyze.Analyze(r.Context(), domain.MatchInput{ResumeText: req.ResumeText, JobText: req.JobDescription})
		if err != nil {
			writeError(w, r, fmt.Errorf("analyze: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func jsonFieldName(field string) string {
	switch field {
	case "ResumeText":
		return "resume_text"
	case "JobDescription":
		return "job_description"
	default:
		return strings.ToLower(field)
	}
}

// ExtractHandler accepts a single PDF upload and returns its plain text.
func (s *Server) ExtractHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		tooLarge := func() {
			writeError(w, r, fmt.Errorf("%w: file exceeds %d MB", domain.ErrPayloadTooLarge, s.Cfg.MaxUploadMB),
				map[string]any{"max_mb": s.Cfg.MaxUploadMB})
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartSlack)
		if err := r.ParseMultipartForm(maxBytes + multipartSlack); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) || strings.Contains(strings.ToLower(err.Error()), "too large") {
				tooLarge()
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		f, hdr, err := r.FormFile(uploadFormField)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: file required", domain.ErrInvalidArgument), map[string]string{"field": uploadFormField})
			return
		}
		defer func() { _ = f.Close() }()
		if hdr.Size > maxBytes {
			tooLarge()
			return
		}
		data, err := io.ReadAll(f)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		if !strings.EqualFold(filepath.Ext(hdr.Filename), ".pdf") {
			writeError(w, r, fmt.Errorf("%w: only PDF files are supported", domain.ErrUnsupportedMedia),
				map[string]any{"filename": hdr.Filename})
			return
		}
		if mt := mimetype.Detect(data); !mt.Is(pdfMIME) {
			writeError(w, r, fmt.Errorf("%w: only PDF files are supported", domain.ErrUnsupportedMedia),
				map[string]any{"filename": hdr.Filename, "mime": mt.String()})
			return
		}

		text, err := s.Extractor.Extract(r.Context(), hdr.Filename, data)
		if err != nil {
			LoggerFrom(r).Warn("extract failed", slog.String("file", hdr.Filename), slog.Any("error", err))
			if !errors.Is(err, domain.ErrExtractFailed) {
				err = fmt.Errorf("%w: %v", domain.ErrExtractFailed, err)
			}
			writeError(w, r, err, map[string]any{"filename": hdr.Filename})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": text, "filename": hdr.Filename})
	}
}

// VocabularyHandler lists the active keyword vocabulary.
func (s *Server) VocabularyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		terms := make([]string, len(s.Vocabulary))
		copy(terms, s.Vocabulary)
		writeJSON(w, http.StatusOK, map[string]any{"terms": terms, "count": len(terms)})
	}
}

// ReadyzHandler reports the model credential and, when configured, the Tika probe.
// A missing credential is informational: analyses still run with static suggestions.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name     string `json:"name"`
		OK       bool   `json:"ok"`
		Optional bool   `json:"optional,omitempty"`
		Details  string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)

		cred := check{Name: "groq_credential", OK: s.Cfg.HasGroqCredential(), Optional: true}
		if !cred.OK {
			cred.Details = "GROQ_API_KEY not set; suggestions use static guidance"
		}
		checks = append(checks, cred)

		if s.TikaCheck != nil {
			if err := s.TikaCheck(ctx); err != nil {
				checks = append(checks, check{Name: "tika", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "tika", OK: true})
			}
		}

		st := http.StatusOK
		for _, c := range checks {
			if !c.OK && !c.Optional {
				st = http.StatusServiceUnavailable
				break
			}
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
