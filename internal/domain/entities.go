package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrExtractFailed    = errors.New("extract failed")
	ErrUpstream         = errors.New("upstream error")
	ErrInternal         = errors.New("internal error")
)

// Vocabulary is the ordered, lowercase keyword list used for overlap scoring.
// Treat it as read-only once built.
type Vocabulary []string

// MatchInput holds the two free-form texts compared by an analysis.
type MatchInput struct {
	ResumeText string
	JobText    string
}

// MatchResult is the keyword overlap between a resume and a job description.
// Invariants: MatchingSkills and MissingSkills partition JobSkills; all three
// keep vocabulary order; BaseScore in [0,100].
type MatchResult struct {
	BaseScore      int
	MatchingSkills []string
	MissingSkills  []string
	JobSkills      []string
}

// SuggestionMode tells how a SuggestionResult was produced.
type SuggestionMode string

const (
	// SuggestionModeNoCredential: no usable API key, static setup instructions returned.
	SuggestionModeNoCredential SuggestionMode = "no_credential"
	// SuggestionModeFallback: the model request failed, generic advice returned.
	SuggestionModeFallback SuggestionMode = "fallback"
	// SuggestionModeLive: suggestions came from the model.
	SuggestionModeLive SuggestionMode = "live"
)

// Degraded reports whether the mode returned static guidance instead of model output.
func (m SuggestionMode) Degraded() bool { return m != SuggestionModeLive }

// SuggestionResult is the outcome of a suggestion request.
type SuggestionResult struct {
	Suggestions []string
	MatchScore  int
	Mode        SuggestionMode
}

// AnalysisResult is what a single analysis returns to the caller.
type AnalysisResult struct {
	Score          int            `json:"score"`
	MatchingSkills []string       `json:"matching_skills"`
	MissingSkills  []string       `json:"missing_skills"`
	JobSkills      []string       `json:"job_skills"`
	Suggestions    []string       `json:"suggestions"`
	Mode           SuggestionMode `json:"mode"`
}

// ChatClient (port)
// Complete sends a single user-role prompt and returns the model's reply text.
type ChatClient interface {
	Complete(ctx Context, prompt string) (string, error)
}

// TextExtractor (port)
// Extract returns the plain text layer of an uploaded document.
type TextExtractor interface {
	Extract(ctx Context, fileName string, data []byte) (string, error)
}

// Context is an alias so ports read the same across the domain.
type Context = context.Context
