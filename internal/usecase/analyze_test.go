package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-matcher/internal/domain"
	"github.com/fairyhunter13/resume-matcher/internal/matcher"
	"github.com/fairyhunter13/resume-matcher/internal/usecase"
)

const (
	sampleResume = "Experienced in JavaScript and React"
	sampleJob    = "Looking for React, Node.js and AWS skills"
)

func TestAnalyze_BlankInput(t *testing.T) {
	t.Parallel()
	chat := &mockChat{}
	svc := usecase.NewAnalyzeService(matcher.New(matcher.DefaultVocabulary()), usecase.NewSuggestionService(chat, true, 0))

	for _, in := range []domain.MatchInput{
		{ResumeText: "", JobText: sampleJob},
		{ResumeText: sampleResume, JobText: "   \n\t"},
		{},
	} {
		_, err := svc.Analyze(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
	chat.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnalyze_NoCredential(t *testing.T) {
	t.Parallel()
	svc := usecase.NewAnalyzeService(matcher.New(matcher.DefaultVocabulary()), usecase.NewSuggestionService(nil, false, 0))

	res, err := svc.Analyze(context.Background(), domain.MatchInput{ResumeText: sampleResume, JobText: sampleJob})
	require.NoError(t, err)
	assert.Equal(t, 33, res.Score)
	assert.Equal(t, []string{"react", "node", "aws"}, res.JobSkills)
	assert.Equal(t, []string{"react"}, res.MatchingSkills)
	assert.Equal(t, []string{"node", "aws"}, res.MissingSkills)
	assert.Equal(t, domain.SuggestionModeNoCredential, res.Mode)
	assert.Equal(t, usecase.NoCredentialSuggestions, res.Suggestions)
}

func TestAnalyze_Live(t *testing.T) {
	t.Parallel()
	chat := &mockChat{}
	chat.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Matching Skills: react\n") &&
			strings.Contains(p, "Missing Skills: node, aws\n")
	})).Return(`["Add Node.js projects","Mention AWS certifications"]`, nil).Once()
	svc := usecase.NewAnalyzeService(matcher.New(matcher.DefaultVocabulary()), usecase.NewSuggestionService(chat, true, 0))

	res, err := svc.Analyze(context.Background(), domain.MatchInput{ResumeText: sampleResume, JobText: sampleJob})
	require.NoError(t, err)
	assert.Equal(t, 38, res.Score)
	assert.Equal(t, domain.SuggestionModeLive, res.Mode)
	assert.Equal(t, []string{"Add Node.js projects", "Mention AWS certifications"}, res.Suggestions)
	chat.AssertExpectations(t)
}

func TestAnalyze_NoVocabularyTermsInJob(t *testing.T) {
	t.Parallel()
	svc := usecase.NewAnalyzeService(matcher.New(matcher.DefaultVocabulary()), usecase.NewSuggestionService(nil, false, 0))

	res, err := svc.Analyze(context.Background(), domain.MatchInput{ResumeText: "anything", JobText: "We need a friendly barista"})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Score)
	assert.Empty(t, res.JobSkills)
	assert.Empty(t, res.MatchingSkills)
	assert.Empty(t, res.MissingSkills)
}
