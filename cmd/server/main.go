// Command server starts the resume matcher HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/resume-matcher/internal/adapter/ai/groq"
	httpserver "github.com/fairyhunter13/resume-matcher/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-matcher/internal/adapter/observability"
	pdfext "github.com/fairyhunter13/resume-matcher/internal/adapter/textextractor/pdf"
	tikaext "github.com/fairyhunter13/resume-matcher/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/resume-matcher/internal/app"
	"github.com/fairyhunter13/resume-matcher/internal/config"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/internal/matcher"
	"github.com/fairyhunter13/resume-matcher/internal/usecase"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	vocab, err := matcher.LoadVocabulary(cfg.VocabularyFile)
	if err != nil {
		slog.Error("vocabulary load failed", slog.String("file", cfg.VocabularyFile), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("vocabulary loaded", slog.Int("terms", len(vocab)), slog.String("file", cfg.VocabularyFile))

	if cfg.HasGroqCredential() {
		slog.Info("groq client configured", slog.String("model", cfg.GroqModel))
	} else {
		slog.Warn("GROQ_API_KEY not set; suggestions fall back to setup instructions")
	}
	chat := groq.New(cfg)

	var (
		ext  domain.TextExtractor
		tika *tikaext.Client
	)
	switch cfg.Extractor {
	case config.ExtractorTika:
		tika = tikaext.New(cfg.TikaURL)
		ext = tika
	default:
		ext = pdfext.New()
	}
	slog.Info("text extractor selected", slog.String("backend", cfg.Extractor))

	suggestSvc := usecase.NewSuggestionService(chat, cfg.HasGroqCredential(), cfg.PromptCharLimit)
	analyzeSvc := usecase.NewAnalyzeService(matcher.New(vocab), suggestSvc)

	var tikaCheck func(context.Context) error
	if tika != nil {
		tikaCheck = app.BuildTikaCheck(cfg, tika)
	}

	srv := httpserver.NewServer(cfg, analyzeSvc, ext, vocab, tikaCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
