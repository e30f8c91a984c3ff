// Package httpserver contains HTTP handlers and middleware.
//
// It exposes the analysis, PDF extraction and vocabulary endpoints as a JSON
// API. Handlers stay thin: they decode and validate input, call the usecase
// layer, and map domain errors to status codes in one place.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/resume-matcher/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	msg := "internal error"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
		msg = err.Error()
	case errors.Is(err, domain.ErrUnsupportedMedia):
		code = http.StatusUnsupportedMediaType
		codeStr = "UNSUPPORTED_MEDIA"
		msg = err.Error()
	case errors.Is(err, domain.ErrPayloadTooLarge):
		code = http.StatusRequestEntityTooLarge
		codeStr = "PAYLOAD_TOO_LARGE"
		msg = err.Error()
	case errors.Is(err, domain.ErrExtractFailed):
		code = http.StatusUnprocessableEntity
		codeStr = "EXTRACT_FAILED"
		msg = extractFailedMessage
	case errors.Is(err, domain.ErrUpstream):
		code = http.StatusBadGateway
		codeStr = "UPSTREAM"
		msg = "upstream error"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: msg, Details: details}})
}

const extractFailedMessage = "could not read file; please paste the text instead"
