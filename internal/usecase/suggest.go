// Package usecase contains application business logic services.
package usecase

import (
	"log/slog"

	"github.com/fairyhunter13/resume-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
)

// DefaultCharLimit is how many characters of each text reach the model.
const DefaultCharLimit = 2000

// LiveScoreBonus is added to the base score when suggestions come from the model.
const LiveScoreBonus = 5

// NoCredentialSuggestions explain how to enable model-backed suggestions.
var NoCredentialSuggestions = []string{
	"Add an API key to get AI-powered suggestions",
	"Set GROQ_API_KEY in your .env.local file",
	"You can get a free API key from https://console.groq.com",
}

// FallbackSuggestions are generic advice returned when the model request fails.
var FallbackSuggestions = []string{
	"Highlight relevant experience that matches the job requirements",
	"Quantify your achievements with specific metrics and numbers",
	"Tailor your resume summary to align with the job description",
	"Add missing technical skills mentioned in the job posting",
}

// SuggestionService requests improvement suggestions for a match.
type SuggestionService struct {
	Chat          domain.ChatClient
	HasCredential bool
	CharLimit     int
}

// NewSuggestionService constructs a SuggestionService. charLimit <= 0 selects DefaultCharLimit.
func NewSuggestionService(chat domain.ChatClient, hasCredential bool, charLimit int) SuggestionService {
	if charLimit <= 0 {
		charLimit = DefaultCharLimit
	}
	return SuggestionService{Chat: chat, HasCredential: hasCredential, CharLimit: charLimit}
}

// Suggest never fails: missing credentials and request failures degrade to
// static suggestions with the base score unchanged.
func (s SuggestionService) Suggest(ctx domain.Context, resume, job string, match domain.MatchResult) domain.SuggestionResult {
	lg := observability.LoggerFromContext(ctx)
	if !s.HasCredential || s.Chat == nil {
		lg.Debug("no model credential configured; returning setup instructions")
		return degraded(domain.SuggestionModeNoCredential, NoCredentialSuggestions, match.BaseScore)
	}

	limit := s.CharLimit
	if limit <= 0 {
		limit = DefaultCharLimit
	}
	reply, err := s.Chat.Complete(ctx, BuildPrompt(resume, job, match, limit))
	if err != nil {
		lg.Warn("suggestion request failed; returning generic advice", slog.Any("error", err))
		return degraded(domain.SuggestionModeFallback, FallbackSuggestions, match.BaseScore)
	}

	return domain.SuggestionResult{
		Suggestions: ParseSuggestions(reply),
		MatchScore:  min(match.BaseScore+LiveScoreBonus, 100),
		Mode:        domain.SuggestionModeLive,
	}
}

func degraded(mode domain.SuggestionMode, list []string, score int) domain.SuggestionResult {
	out := make([]string, len(list))
	copy(out, list)
	return domain.SuggestionResult{Suggestions: out, MatchScore: score, Mode: mode}
}
