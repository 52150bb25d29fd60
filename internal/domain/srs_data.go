package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scheduling defaults shared by the SRS engine and storage validation.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// Validation errors for SrsData
var (
	ErrEmptySrsLearnerID = fmt.Errorf("%w: srs data learner ID cannot be empty", ErrValidation)
	ErrEmptySrsWordID    = fmt.Errorf("%w: srs data word ID cannot be empty", ErrValidation)
	ErrInvalidInterval   = fmt.Errorf("%w: interval must be greater than or equal to 0", ErrValidation)
	ErrInvalidRepetition = fmt.Errorf("%w: repetition must be greater than or equal to 0", ErrValidation)
	ErrInvalidEaseFactor = fmt.Errorf("%w: ease factor must be at least 1.3", ErrValidation)
)

// Schedule is the mutable part of a scheduling record: everything a single
// review recomputes.
type Schedule struct {
	Repetition     int       `json:"repetition"`       // Consecutive successful reviews since the last reset
	EaseFactor     float64   `json:"ease_factor"`      // Growth multiplier for the interval, never below 1.3
	Interval       int       `json:"interval"`         // Days until the next review; 0 means due immediately
	NextReviewDate time.Time `json:"next_review_date"` // UpdatedAt + Interval days
	UpdatedAt      time.Time `json:"updated_at"`
}

// SrsData is a learner's spaced repetition record for one vocabulary item.
// WordID refers to a vocabulary entry owned outside this service.
type SrsData struct {
	LearnerID uuid.UUID `json:"learner_id"`
	WordID    string    `json:"word_id"`
	Schedule
	CreatedAt time.Time `json:"created_at"`
}

// NewSrsData creates the record for a word seen for the first time.
// The word is due immediately.
func NewSrsData(learnerID uuid.UUID, wordID string, now time.Time) (*SrsData, error) {
	now = now.UTC()
	data := &SrsData{
		LearnerID: learnerID,
		WordID:    wordID,
		Schedule: Schedule{
			Repetition:     0,
			EaseFactor:     DefaultEaseFactor,
			Interval:       0,
			NextReviewDate: now,
			UpdatedAt:      now,
		},
		CreatedAt: now,
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	return data, nil
}

// Validate checks if the SrsData has valid data.
// Returns an error if any field fails validation.
func (d *SrsData) Validate() error {
	if d.LearnerID == uuid.Nil {
		return ErrEmptySrsLearnerID
	}

	if strings.TrimSpace(d.WordID) == "" {
		return ErrEmptySrsWordID
	}

	if d.Repetition < 0 {
		return ErrInvalidRepetition
	}

	if d.Interval < 0 {
		return ErrInvalidInterval
	}

	if d.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	return nil
}

// WithSchedule returns a copy of the record carrying the given schedule.
// The receiver is not modified.
func (d *SrsData) WithSchedule(s Schedule) *SrsData {
	next := *d
	next.Schedule = s
	return &next
}
