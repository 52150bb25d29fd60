// Package review schedules vocabulary reviews for learners: it applies
// ratings through the SRS algorithm, keeps the review log, and builds the
// prioritized queue of due words.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/store"
)

// DefaultQueueLimit is the queue size used when the caller gives none.
const DefaultQueueLimit = 20

// MaxQueueLimit caps the size of a single due queue.
const MaxQueueLimit = 200

// QueueItem is one due word in a learner's review queue.
type QueueItem struct {
	WordID         string    `json:"word_id"`
	Repetition     int       `json:"repetition"`
	EaseFactor     float64   `json:"ease_factor"`
	Interval       int       `json:"interval"`
	NextReviewDate time.Time `json:"next_review_date"`
	OverdueDays    int       `json:"overdue_days"`
}

// Stats summarizes a learner's review activity.
type Stats struct {
	Tracked      int     `json:"tracked"`
	DueNow       int     `json:"due_now"`
	Reviews      int     `json:"reviews"`
	AverageScore float64 `json:"average_score"`
}

// Service manages the review schedule of learners.
type Service interface {
	// SubmitRating applies a rating to the learner's record for a word and
	// returns the updated record. The first rating of an unseen word creates
	// its record in the first-exposure state, whatever the rating.
	//
	// The read-compute-write cycle and the review log entry are committed in
	// a single transaction.
	SubmitRating(
		ctx context.Context,
		learnerID uuid.UUID,
		wordID string,
		rating domain.Rating,
	) (*domain.SrsData, error)

	// DueQueue returns up to limit due words, most overdue first and hardest
	// (lowest ease) first among equally overdue words.
	DueQueue(ctx context.Context, learnerID uuid.UUID, limit int) ([]QueueItem, error)

	// Postpone pushes a tracked word's next review back by days.
	Postpone(ctx context.Context, learnerID uuid.UUID, wordID string, days int) (*domain.SrsData, error)

	// Stats summarizes the learner's tracked words and review log.
	Stats(ctx context.Context, learnerID uuid.UUID) (*Stats, error)

	// DueDigest returns the number of due words of every learner with any.
	DueDigest(ctx context.Context) ([]store.LearnerDueCount, error)
}

// Common error types for the review service
var (
	// ErrInvalidLearner indicates a request without a learner identity.
	ErrInvalidLearner = errors.New("learner ID cannot be empty")

	// ErrInvalidWord indicates a request without a word identifier.
	ErrInvalidWord = errors.New("word ID cannot be empty")

	// ErrWordNotTracked indicates the learner has never reviewed the word.
	ErrWordNotTracked = errors.New("word is not tracked for this learner")
)
