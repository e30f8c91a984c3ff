package usecase

import (
	"fmt"
	"log/slog"

	"github.com/fairyhunter13/resume-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/pkg/textx"
)

// Matcher scores keyword overlap; *matcher.Matcher satisfies it.
type Matcher interface {
	Match(resume, job string) domain.MatchResult
}

// AnalyzeService runs the matcher and then the suggestion request for one input pair.
type AnalyzeService struct {
	Matcher     Matcher
	Suggestions SuggestionService
}

// NewAnalyzeService constructs an AnalyzeService with its dependencies.
func NewAnalyzeService(m Matcher, s SuggestionService) AnalyzeService {
	return AnalyzeService{Matcher: m, Suggestions: s}
}

// Analyze validates the input, then scores and requests suggestions. The only
// error it returns is domain.ErrInvalidArgument for blank input.
func (s AnalyzeService) Analyze(ctx domain.Context, in domain.MatchInput) (domain.AnalysisResult, error) {
	if textx.IsBlank(in.ResumeText) || textx.IsBlank(in.JobText) {
		return domain.AnalysisResult{}, fmt.Errorf("%w: provide both resume and job description", domain.ErrInvalidArgument)
	}

	match := s.Matcher.Match(in.ResumeText, in.JobText)
	sug := s.Suggestions.Suggest(ctx, in.ResumeText, in.JobText, match)

	observability.ObserveAnalysis(string(sug.Mode), sug.MatchScore)
	observability.LoggerFromContext(ctx).Info("analysis completed",
		slog.Int("base_score", match.BaseScore),
		slog.Int("score", sug.MatchScore),
		slog.Int("job_skills", len(match.JobSkills)),
		slog.Int("matching_skills", len(match.MatchingSkills)),
		slog.String("mode", string(sug.Mode)))

	return domain.AnalysisResult{
		Score:          sug.MatchScore,
		MatchingSkills: match.MatchingSkills,
		MissingSkills:  match.MissingSkills,
		JobSkills:      match.JobSkills,
		Suggestions:    sug.Suggestions,
		Mode:           sug.Mode,
	}, nil
}
