package usecase_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/fairyhunter13/resume-matcher/internal/domain"
)

type mockChat struct{ mock.Mock }

func (m *mockChat) Complete(ctx domain.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
