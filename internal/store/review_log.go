package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/domain"
)

// ReviewSummary aggregates a learner's review log.
type ReviewSummary struct {
	Reviews      int     `db:"reviews"`
	AverageScore float64 `db:"average_score"`
}

// ReviewLogStore defines the interface for the append-only review log.
type ReviewLogStore interface {
	// Append records one rating event.
	Append(ctx context.Context, entry *domain.ReviewLogEntry) error

	// Summary returns the learner's review count and mean rating score.
	// A learner without reviews gets a zero summary, not an error.
	Summary(ctx context.Context, learnerID uuid.UUID) (*ReviewSummary, error)

	// WithTx returns a new ReviewLogStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) ReviewLogStore
}
