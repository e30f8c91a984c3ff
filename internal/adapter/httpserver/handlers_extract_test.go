package httpserver_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-matcher/internal/domain"
)

var fakePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func TestExtractHandler_Success(t *testing.T) {
	ext := &mockExtractor{}
	ext.On("Extract", mock.Anything, "cv.pdf", fakePDF).Return("Senior Go developer\n", nil).Once()
	srv := newTestServer(testConfig(), nil, ext)

	rec := httptest.NewRecorder()
	srv.ExtractHandler().ServeHTTP(rec, multipartRequest(t, "file", "cv.pdf", fakePDF))
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Senior Go developer\n", got["text"])
	assert.Equal(t, "cv.pdf", got["filename"])
	ext.AssertExpectations(t)
}

func TestExtractHandler_UppercaseExtension(t *testing.T) {
	ext := &mockExtractor{}
	ext.On("Extract", mock.Anything, "CV.PDF", mock.Anything).Return("text", nil)
	rec := httptest.NewRecorder()
	newTestServer(testConfig(), nil, ext).ExtractHandler().ServeHTTP(rec, multipartRequest(t, "file", "CV.PDF", fakePDF))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExtractHandler_UnsupportedMedia(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		data     []byte
	}{
		{"docx extension", "cv.docx", fakePDF},
		{"txt extension", "cv.txt", []byte("plain resume")},
		{"pdf extension but text content", "cv.pdf", []byte("just some text pretending")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext := &mockExtractor{}
			rec := httptest.NewRecorder()
			newTestServer(testConfig(), nil, ext).ExtractHandler().ServeHTTP(rec, multipartRequest(t, "file", tc.filename, tc.data))
			assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNSUPPORTED_MEDIA")
			ext.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExtractHandler_TooLarge(t *testing.T) {
	big := append(append([]byte{}, fakePDF...), bytes.Repeat([]byte("0"), 3<<20)...)
	ext := &mockExtractor{}
	rec := httptest.NewRecorder()
	newTestServer(testConfig(), nil, ext).ExtractHandler().ServeHTTP(rec, multipartRequest(t, "file", "cv.pdf", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	ext.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestExtractHandler_JustOverLimit(t *testing.T) {
	// Fits within the multipart slack but exceeds the file limit.
	big := append(append([]byte{}, fakePDF...), bytes.Repeat([]byte("0"), 1<<20)...)
	ext := &mockExtractor{}
	rec := httptest.NewRecorder()
	newTestServer(testConfig(), nil, ext).ExtractHandler().ServeHTTP(rec, multipartRequest(t, "file", "cv.pdf", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestExtractHandler_ExtractFailed(t *testing.T) {
	for name, extErr := range map[string]error{
		"sentinel": fmt.Errorf("op=pdf.Extract: %w: no text found", domain.ErrExtractFailed),
		"plain":    errors.New("tika down"),
	} {
		t.Run(name, func(t *testing.T) {
			ext := &mockExtractor{}
			ext.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return("", extErr)
			rec := httptest.NewRecorder()
			newTestServer(testConfig(), nil, ext).ExtractHandler().ServeHTTP(rec, multipartRequest(t, "file", "cv.pdf", fakePDF))
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), "EXTRACT_FAILED")
			assert.Contains(t, rec.Body.String(), "please paste the text instead")
			assert.NotContains(t, rec.Body.String(), "op=")
		})
	}
}

func TestExtractHandler_BadRequests(t *testing.T) {
	srv := newTestServer(testConfig(), nil, &mockExtractor{})

	req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ExtractHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	srv.ExtractHandler().ServeHTTP(rec, multipartRequest(t, "resume", "cv.pdf", fakePDF))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"file"`)
}
