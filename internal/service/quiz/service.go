// Package quiz turns a learner's recorded mistakes into multiple-choice
// re-quizzes and tracks their progress towards mastery.
package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/domain"
)

// DefaultMasteryThreshold is the number of consecutive correct attempts after
// which a wrong answer counts as mastered.
const DefaultMasteryThreshold = 3

// RecordInput describes a missed question.
type RecordInput struct {
	ExerciseID    string              `json:"exercise_id" validate:"required,max=128"`
	Type          domain.ActivityType `json:"type" validate:"required,max=32"`
	CorrectAnswer string              `json:"correct_answer" validate:"required,max=512"`
	UserAnswer    string              `json:"user_answer" validate:"max=512"`
}

// Quiz is a multiple-choice question rebuilt from a wrong answer.
type Quiz struct {
	WrongAnswerID   uuid.UUID           `json:"wrong_answer_id"`
	ExerciseID      string              `json:"exercise_id"`
	Type            domain.ActivityType `json:"type"`
	Level           domain.Level        `json:"level"`
	Options         []string            `json:"options"`
	CorrectIndex    int                 `json:"correct_index"`
	UserAnswerIndex int                 `json:"user_answer_index"`
	// Degraded is set when every distractor source ran dry before the
	// option set reached its target size.
	Degraded bool `json:"degraded"`
}

// Service manages wrong answers and the quizzes built from them.
type Service interface {
	// RecordWrongAnswer stores a new, unmastered wrong answer for the learner.
	RecordWrongAnswer(ctx context.Context, learnerID uuid.UUID, input RecordInput) (*domain.WrongAnswer, error)

	// BuildQuiz generates an option set for one of the learner's wrong answers.
	// Distractor peers come from the learner's other wrong answers.
	BuildQuiz(
		ctx context.Context,
		learnerID uuid.UUID,
		wrongAnswerID uuid.UUID,
		level domain.Level,
	) (*Quiz, error)

	// RecordAttempt registers a re-quiz attempt. A correct attempt extends the
	// streak and marks the answer mastered at the threshold; a wrong attempt
	// resets the streak and the mastered flag.
	RecordAttempt(
		ctx context.Context,
		learnerID uuid.UUID,
		wrongAnswerID uuid.UUID,
		correct bool,
	) (*domain.WrongAnswer, error)
}

// Common error types for the quiz service
var (
	// ErrInvalidLearner indicates a request without a learner identity.
	ErrInvalidLearner = errors.New("learner ID cannot be empty")
)
