package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/domain"
)

// LearnerDueCount is the number of words due for one learner.
type LearnerDueCount struct {
	LearnerID uuid.UUID `json:"learner_id" db:"learner_id"`
	Due       int       `json:"due" db:"due"`
}

// SrsStore defines the interface for SRS scheduling record persistence.
type SrsStore interface {
	// Create saves a new record. It validates the record first and returns
	// ErrDuplicate when the learner already has a record for the word.
	Create(ctx context.Context, data *domain.SrsData) error

	// Get retrieves the learner's record for a word.
	// Returns ErrSrsDataNotFound if there is none.
	// This method does NOT lock the row; use GetForUpdate inside a transaction
	// when the record is about to be rewritten.
	Get(ctx context.Context, learnerID uuid.UUID, wordID string) (*domain.SrsData, error)

	// GetForUpdate retrieves the record with a row-level lock where the
	// dialect supports it (SELECT ... FOR UPDATE on PostgreSQL).
	GetForUpdate(ctx context.Context, learnerID uuid.UUID, wordID string) (*domain.SrsData, error)

	// Update rewrites the scheduling fields of an existing record.
	// Returns ErrSrsDataNotFound if the record does not exist.
	Update(ctx context.Context, data *domain.SrsData) error

	// ListByLearner returns all of a learner's records ordered by word ID.
	ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.SrsData, error)

	// ListDue returns the learner's records with NextReviewDate <= now,
	// oldest due date first.
	ListDue(ctx context.Context, learnerID uuid.UUID, now time.Time) ([]*domain.SrsData, error)

	// CountDueByLearner returns due counts for every learner with at least one due word.
	CountDueByLearner(ctx context.Context, now time.Time) ([]LearnerDueCount, error)

	// WithTx returns a new SrsStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) SrsStore
}
