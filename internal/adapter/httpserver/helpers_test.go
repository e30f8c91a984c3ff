package httpserver_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpserver "github.com/fairyhunter13/resume-matcher/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-matcher/internal/config"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/internal/matcher"
	"github.com/fairyhunter13/resume-matcher/internal/usecase"
)

type mockChat struct{ mock.Mock }

func (m *mockChat) Complete(ctx domain.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockExtractor struct{ mock.Mock }

func (m *mockExtractor) Extract(ctx domain.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

func testConfig() config.Config {
	return config.Config{AppEnv: "test", MaxUploadMB: 1, PromptCharLimit: 2000}
}

func newTestServer(cfg config.Config, chat domain.ChatClient, ext domain.TextExtractor) *httpserver.Server {
	vocab := matcher.DefaultVocabulary()
	sug := usecase.NewSuggestionService(chat, cfg.HasGroqCredential(), cfg.PromptCharLimit)
	analyze := usecase.NewAnalyzeService(matcher.New(vocab), sug)
	return httpserver.NewServer(cfg, analyze, ext, vocab, nil)
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/v1/extract", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(context.Background())
}
