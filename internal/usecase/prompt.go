package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/pkg/textx"
)

const promptTemplate = `Analyze this resume against the job description and provide 3-5 specific, actionable improvement suggestions.

Resume: %s

Job Description: %s

Matching Skills: %s
Missing Skills: %s

Provide concise suggestions in a JSON array format: ["suggestion 1", "suggestion 2", ...]`

const noneIdentified = "None identified"

// BuildPrompt renders the suggestion prompt with both texts cut to limit characters.
func BuildPrompt(resume, job string, match domain.MatchResult, limit int) string {
	return fmt.Sprintf(promptTemplate,
		textx.Truncate(resume, limit),
		textx.Truncate(job, limit),
		skillList(match.MatchingSkills),
		skillList(match.MissingSkills),
	)
}

func skillList(skills []string) string {
	if len(skills) == 0 {
		return noneIdentified
	}
	return strings.Join(skills, ", ")
}

// jsonArrayRe spans from the first '[' to the last ']' in the reply.
var jsonArrayRe = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseSuggestions extracts the JSON string array embedded in a model reply.
// When no array is found or it does not decode as strings, the whole reply
// becomes the single suggestion.
func ParseSuggestions(reply string) []string {
	if m := jsonArrayRe.FindString(reply); m != "" {
		var out []string
		if err := json.Unmarshal([]byte(m), &out); err == nil {
			return out
		}
	}
	return []string{reply}
}
