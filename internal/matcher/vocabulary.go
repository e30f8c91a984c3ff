package matcher

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/resume-matcher/internal/domain"
)

var defaultTerms = [...]string{
	"javascript", "python", "java", "react", "node", "sql", "aws", "docker",
	"kubernetes", "git", "agile", "scrum", "leadership", "management",
	"communication", "teamwork", "problem solving", "analytical", "creative",
	"typescript", "angular", "vue", "mongodb", "postgresql", "redis",
	"ci/cd", "devops", "cloud", "azure", "gcp", "machine learning", "ai",
	"data analysis", "excel", "powerpoint", "project management",
}

// DefaultVocabulary returns a fresh copy of the built-in term list.
func DefaultVocabulary() domain.Vocabulary {
	v := make(domain.Vocabulary, len(defaultTerms))
	copy(v, defaultTerms[:])
	return v
}

type vocabularyFile struct {
	Terms []string `yaml:"terms"`
}

// LoadVocabulary reads a YAML document of the form
//
//	terms:
//	  - go
//	  - grpc
//
// An empty path yields DefaultVocabulary.
func LoadVocabulary(path string) (domain.Vocabulary, error) {
	if path == "" {
		return DefaultVocabulary(), nil
	}
	b, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("op=matcher.LoadVocabulary: %w", err)
	}
	return ParseVocabulary(b)
}

// ParseVocabulary decodes YAML vocabulary bytes. Terms are trimmed and
// lowercased; duplicates keep their first position.
func ParseVocabulary(b []byte) (domain.Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("op=matcher.ParseVocabulary: %w: %v", domain.ErrInvalidArgument, err)
	}
	if len(f.Terms) == 0 {
		return nil, fmt.Errorf("op=matcher.ParseVocabulary: %w: no terms", domain.ErrInvalidArgument)
	}
	seen := make(map[string]struct{}, len(f.Terms))
	out := make(domain.Vocabulary, 0, len(f.Terms))
	for i, t := range f.Terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return nil, fmt.Errorf("op=matcher.ParseVocabulary: %w: blank term at index %d", domain.ErrInvalidArgument, i)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
