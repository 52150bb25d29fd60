package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/service/quiz"
)

// MockQuizService implements quiz.Service for testing
type MockQuizService struct {
	RecordWrongAnswerFn func(ctx context.Context, learnerID uuid.UUID, input quiz.RecordInput) (*domain.WrongAnswer, error)
	BuildQuizFn         func(ctx context.Context, learnerID, wrongAnswerID uuid.UUID, level domain.Level) (*quiz.Quiz, error)
	RecordAttemptFn     func(ctx context.Context, learnerID, wrongAnswerID uuid.UUID, correct bool) (*domain.WrongAnswer, error)

	// Default response values
	WrongAnswer *domain.WrongAnswer
	Quiz        *quiz.Quiz
	Err         error
}

var _ quiz.Service = (*MockQuizService)(nil)

// RecordWrongAnswer implements the quiz.Service interface
func (m *MockQuizService) RecordWrongAnswer(
	ctx context.Context,
	learnerID uuid.UUID,
	input quiz.RecordInput,
) (*domain.WrongAnswer, error) {
	if m.RecordWrongAnswerFn != nil {
		return m.RecordWrongAnswerFn(ctx, learnerID, input)
	}
	return m.WrongAnswer, m.Err
}

// BuildQuiz implements the quiz.Service interface
func (m *MockQuizService) BuildQuiz(
	ctx context.Context,
	learnerID uuid.UUID,
	wrongAnswerID uuid.UUID,
	level domain.Level,
) (*quiz.Quiz, error) {
	if m.BuildQuizFn != nil {
		return m.BuildQuizFn(ctx, learnerID, wrongAnswerID, level)
	}
	return m.Quiz, m.Err
}

// RecordAttempt implements the quiz.Service interface
func (m *MockQuizService) RecordAttempt(
	ctx context.Context,
	learnerID uuid.UUID,
	wrongAnswerID uuid.UUID,
	correct bool,
) (*domain.WrongAnswer, error) {
	if m.RecordAttemptFn != nil {
		return m.RecordAttemptFn(ctx, learnerID, wrongAnswerID, correct)
	}
	return m.WrongAnswer, m.Err
}
