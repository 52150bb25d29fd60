package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLogEntry is an append-only record of one rating event, kept for
// statistics. It never feeds back into scheduling.
type ReviewLogEntry struct {
	ID         uuid.UUID `json:"id"`
	LearnerID  uuid.UUID `json:"learner_id"`
	WordID     string    `json:"word_id"`
	Rating     Rating    `json:"rating"`
	Score      int       `json:"score"`
	Interval   int       `json:"interval"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
