package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/domain"
)

// WrongAnswerStore defines the interface for wrong answer persistence.
type WrongAnswerStore interface {
	// Create saves a new wrong answer after validating it.
	Create(ctx context.Context, wa *domain.WrongAnswer) error

	// Get retrieves a wrong answer by ID.
	// Returns ErrWrongAnswerNotFound if it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.WrongAnswer, error)

	// ListByLearner returns every wrong answer of a learner, oldest first.
	ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]domain.WrongAnswer, error)

	// Update rewrites the mastery fields of an existing wrong answer.
	// Returns ErrWrongAnswerNotFound if it does not exist.
	Update(ctx context.Context, wa *domain.WrongAnswer) error

	// WithTx returns a new WrongAnswerStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) WrongAnswerStore
}
