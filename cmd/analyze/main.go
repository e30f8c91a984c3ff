// Command analyze scores one resume against one job description and prints
// the result as JSON. Files ending in .pdf are extracted locally first.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fairyhunter13/resume-matcher/internal/adapter/ai/groq"
	"github.com/fairyhunter13/resume-matcher/internal/adapter/observability"
	pdfext "github.com/fairyhunter13/resume-matcher/internal/adapter/textextractor/pdf"
	"github.com/fairyhunter13/resume-matcher/internal/config"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/internal/matcher"
	"github.com/fairyhunter13/resume-matcher/internal/usecase"
)

func main() {
	resumePath := flag.String("resume", "", "path to the resume (.pdf or plain text)")
	jobPath := flag.String("job", "", "path to the job description (.pdf or plain text)")
	flag.Parse()

	if err := run(context.Background(), *resumePath, *jobPath); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, resumePath, jobPath string) error {
	if resumePath == "" || jobPath == "" {
		return fmt.Errorf("%w: -resume and -job are required", domain.ErrInvalidArgument)
	}
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(observability.SetupLogger(cfg))

	vocab, err := matcher.LoadVocabulary(cfg.VocabularyFile)
	if err != nil {
		return err
	}
	ext := pdfext.New()
	resume, err := readText(ctx, ext, resumePath)
	if err != nil {
		return err
	}
	job, err := readText(ctx, ext, jobPath)
	if err != nil {
		return err
	}

	svc := usecase.NewAnalyzeService(matcher.New(vocab),
		usecase.NewSuggestionService(groq.New(cfg), cfg.HasGroqCredential(), cfg.PromptCharLimit))
	res, err := svc.Analyze(ctx, domain.MatchInput{ResumeText: resume, JobText: job})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func readText(ctx context.Context, ext domain.TextExtractor, path string) (string, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("op=analyze.readText path=%s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ext.Extract(ctx, filepath.Base(path), b)
	}
	return string(b), nil
}
