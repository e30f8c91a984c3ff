// Package matcher scores keyword overlap between a resume and a job description.
//
// Scoring is a plain substring test of each vocabulary term against the
// lowercased texts. It is pure and safe for concurrent use.
package matcher

import (
	"strings"

	"github.com/fairyhunter13/resume-matcher/internal/domain"
)

// NeutralScore is returned when the job text names no vocabulary term.
const NeutralScore = 50

// Matcher holds an immutable vocabulary.
type Matcher struct {
	vocab domain.Vocabulary
}

// New returns a Matcher over a private copy of v.
func New(v domain.Vocabulary) *Matcher {
	cp := make(domain.Vocabulary, len(v))
	copy(cp, v)
	return &Matcher{vocab: cp}
}

var defaultMatcher = New(DefaultVocabulary())

// Match scores resume against job with the built-in vocabulary.
func Match(resume, job string) domain.MatchResult {
	return defaultMatcher.Match(resume, job)
}

// Vocabulary returns a copy of the terms this Matcher scores against.
func (m *Matcher) Vocabulary() domain.Vocabulary {
	cp := make(domain.Vocabulary, len(m.vocab))
	copy(cp, m.vocab)
	return cp
}

// Match computes the overlap. Skill lists keep vocabulary order and are never nil.
func (m *Matcher) Match(resume, job string) domain.MatchResult {
	resumeLower := strings.ToLower(resume)
	jobLower := strings.ToLower(job)

	res := domain.MatchResult{
		MatchingSkills: []string{},
		MissingSkills:  []string{},
		JobSkills:      []string{},
	}
	for _, term := range m.vocab {
		if !strings.Contains(jobLower, term) {
			continue
		}
		res.JobSkills = append(res.JobSkills, term)
		if strings.Contains(resumeLower, term) {
			res.MatchingSkills = append(res.MatchingSkills, term)
		} else {
			res.MissingSkills = append(res.MissingSkills, term)
		}
	}
	res.BaseScore = score(len(res.MatchingSkills), len(res.JobSkills))
	return res
}

// score is round(100*matched/total) with halves rounded up, or NeutralScore when total is zero.
func score(matched, total int) int {
	if total == 0 {
		return NeutralScore
	}
	return (200*matched + total) / (2 * total)
}
