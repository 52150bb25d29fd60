package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActivityType is the exercise category a wrong answer came from. Distractors
// are normally drawn from the same category as the question.
type ActivityType string

// Known activity types. Other values are accepted as-is.
const (
	ActivityVocabulary ActivityType = "vocabulary"
	ActivityGrammar    ActivityType = "grammar"
	ActivityReading    ActivityType = "reading"
	ActivityListening  ActivityType = "listening"
	ActivityPhrase     ActivityType = "phrase"
)

// Validation errors for WrongAnswer
var (
	ErrWrongAnswerIDEmpty        = fmt.Errorf("%w: wrong answer ID cannot be empty", ErrValidation)
	ErrWrongAnswerLearnerIDEmpty = fmt.Errorf("%w: wrong answer learner ID cannot be empty", ErrValidation)
	ErrWrongAnswerExerciseEmpty  = fmt.Errorf("%w: wrong answer exercise ID cannot be empty", ErrValidation)
	ErrWrongAnswerTypeEmpty      = fmt.Errorf("%w: wrong answer type cannot be empty", ErrValidation)
	ErrWrongAnswerCorrectEmpty   = fmt.Errorf("%w: wrong answer correct answer cannot be empty", ErrValidation)
	ErrWrongAnswerNegativeStreak = fmt.Errorf("%w: consecutive correct count cannot be negative", ErrValidation)
)

// WrongAnswer records a question the learner previously missed.
type WrongAnswer struct {
	ID                 uuid.UUID    `json:"id"`
	LearnerID          uuid.UUID    `json:"learner_id"`
	ExerciseID         string       `json:"exercise_id"`
	Type               ActivityType `json:"type"`
	CorrectAnswer      string       `json:"correct_answer"`
	UserAnswer         string       `json:"user_answer"`
	Mastered           bool         `json:"mastered"`
	ConsecutiveCorrect int          `json:"consecutive_correct"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// NewWrongAnswer creates a new, unmastered WrongAnswer with a fresh ID.
// Returns an error if validation fails.
func NewWrongAnswer(
	learnerID uuid.UUID,
	exerciseID string,
	activity ActivityType,
	correctAnswer string,
	userAnswer string,
) (*WrongAnswer, error) {
	now := time.Now().UTC()
	wa := &WrongAnswer{
		ID:            uuid.New(),
		LearnerID:     learnerID,
		ExerciseID:    exerciseID,
		Type:          activity,
		CorrectAnswer: correctAnswer,
		UserAnswer:    userAnswer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := wa.Validate(); err != nil {
		return nil, err
	}

	return wa, nil
}

// Validate checks if the WrongAnswer has valid data.
func (w *WrongAnswer) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWrongAnswerIDEmpty
	}
	if w.LearnerID == uuid.Nil {
		return ErrWrongAnswerLearnerIDEmpty
	}
	if strings.TrimSpace(w.ExerciseID) == "" {
		return ErrWrongAnswerExerciseEmpty
	}
	if strings.TrimSpace(string(w.Type)) == "" {
		return ErrWrongAnswerTypeEmpty
	}
	if strings.TrimSpace(w.CorrectAnswer) == "" {
		return ErrWrongAnswerCorrectEmpty
	}
	if w.ConsecutiveCorrect < 0 {
		return ErrWrongAnswerNegativeStreak
	}
	return nil
}
