package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/store"
)

// ReviewLogStore implements store.ReviewLogStore over sqlx.
type ReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewLogStore creates a ReviewLogStore using the given connection or transaction.
func NewReviewLogStore(db store.DBTX, logger *slog.Logger) *ReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

var _ store.ReviewLogStore = (*ReviewLogStore)(nil)

// WithTx implements store.ReviewLogStore.WithTx.
func (s *ReviewLogStore) WithTx(tx *sqlx.Tx) store.ReviewLogStore {
	return &ReviewLogStore{db: tx, logger: s.logger}
}

// Append implements store.ReviewLogStore.Append.
func (s *ReviewLogStore) Append(ctx context.Context, entry *domain.ReviewLogEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := s.db.Rebind(`
		INSERT INTO review_log (id, learner_id, word_id, rating, score, interval_days, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.LearnerID,
		entry.WordID,
		string(entry.Rating),
		entry.Score,
		entry.Interval,
		entry.ReviewedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to append review log entry",
			slog.String("error", err.Error()),
			slog.String("learner_id", entry.LearnerID.String()),
			slog.String("word_id", entry.WordID))
		return MapError(err)
	}
	return nil
}

// Summary implements store.ReviewLogStore.Summary.
func (s *ReviewLogStore) Summary(ctx context.Context, learnerID uuid.UUID) (*store.ReviewSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.Rebind(`
		SELECT COUNT(*) AS reviews,
			COALESCE(CAST(AVG(score) AS DOUBLE PRECISION), 0) AS average_score
		FROM review_log
		WHERE learner_id = ?
	`)

	var summary store.ReviewSummary
	if err := sqlx.GetContext(ctx, s.db, &summary, query, learnerID); err != nil {
		log.Error("failed to summarize review log",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, fmt.Errorf("failed to summarize review log: %w", MapError(err))
	}
	return &summary, nil
}
