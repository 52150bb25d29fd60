package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/store"
)

const srsColumns = `learner_id, word_id, repetition, ease_factor, interval_days,
	next_review_date, created_at, updated_at`

type srsRow struct {
	LearnerID      uuid.UUID `db:"learner_id"`
	WordID         string    `db:"word_id"`
	Repetition     int       `db:"repetition"`
	EaseFactor     float64   `db:"ease_factor"`
	IntervalDays   int       `db:"interval_days"`
	NextReviewDate time.Time `db:"next_review_date"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r srsRow) toDomain() *domain.SrsData {
	return &domain.SrsData{
		LearnerID: r.LearnerID,
		WordID:    r.WordID,
		Schedule: domain.Schedule{
			Repetition:     r.Repetition,
			EaseFactor:     r.EaseFactor,
			Interval:       r.IntervalDays,
			NextReviewDate: r.NextReviewDate.UTC(),
			UpdatedAt:      r.UpdatedAt.UTC(),
		},
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// SrsStore implements store.SrsStore over sqlx.
type SrsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSrsStore creates an SrsStore using the given connection or transaction.
// If logger is nil, a default logger will be used.
func NewSrsStore(db store.DBTX, logger *slog.Logger) *SrsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SrsStore{
		db:     db,
		logger: logger.With(slog.String("component", "srs_store")),
	}
}

var _ store.SrsStore = (*SrsStore)(nil)

// WithTx implements store.SrsStore.WithTx.
func (s *SrsStore) WithTx(tx *sqlx.Tx) store.SrsStore {
	return &SrsStore{db: tx, logger: s.logger}
}

// Create implements store.SrsStore.Create.
func (s *SrsStore) Create(ctx context.Context, data *domain.SrsData) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := data.Validate(); err != nil {
		log.Warn("srs data validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", data.WordID))
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO srs_data (` + srsColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		data.LearnerID,
		data.WordID,
		data.Repetition,
		data.EaseFactor,
		data.Interval,
		data.NextReviewDate.UTC(),
		data.CreatedAt.UTC(),
		data.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to create srs data",
			slog.String("error", err.Error()),
			slog.String("learner_id", data.LearnerID.String()),
			slog.String("word_id", data.WordID))
		return MapError(err)
	}

	log.Debug("srs data created",
		slog.String("learner_id", data.LearnerID.String()),
		slog.String("word_id", data.WordID))
	return nil
}

// Get implements store.SrsStore.Get.
func (s *SrsStore) Get(ctx context.Context, learnerID uuid.UUID, wordID string) (*domain.SrsData, error) {
	return s.get(ctx, learnerID, wordID, false)
}

// GetForUpdate implements store.SrsStore.GetForUpdate.
func (s *SrsStore) GetForUpdate(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID string,
) (*domain.SrsData, error) {
	return s.get(ctx, learnerID, wordID, true)
}

func (s *SrsStore) get(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID string,
	forUpdate bool,
) (*domain.SrsData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + srsColumns + ` FROM srs_data WHERE learner_id = ? AND word_id = ?`
	// SQLite locks the whole database for the transaction instead.
	if forUpdate && isPostgres(s.db) {
		query += ` FOR UPDATE`
	}

	var row srsRow
	err := sqlx.GetContext(ctx, s.db, &row, s.db.Rebind(query), learnerID, wordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("srs data not found",
				slog.String("learner_id", learnerID.String()),
				slog.String("word_id", wordID))
			return nil, store.ErrSrsDataNotFound
		}
		log.Error("failed to get srs data",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("word_id", wordID))
		return nil, MapError(err)
	}

	return row.toDomain(), nil
}

// Update implements store.SrsStore.Update.
func (s *SrsStore) Update(ctx context.Context, data *domain.SrsData) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := data.Validate(); err != nil {
		log.Warn("srs data validation failed during update",
			slog.String("error", err.Error()),
			slog.String("word_id", data.WordID))
		return err
	}

	query := s.db.Rebind(`
		UPDATE srs_data
		SET repetition = ?, ease_factor = ?, interval_days = ?,
			next_review_date = ?, updated_at = ?
		WHERE learner_id = ? AND word_id = ?
	`)
	result, err := s.db.ExecContext(ctx, query,
		data.Repetition,
		data.EaseFactor,
		data.Interval,
		data.NextReviewDate.UTC(),
		data.UpdatedAt.UTC(),
		data.LearnerID,
		data.WordID,
	)
	if err != nil {
		log.Error("failed to update srs data",
			slog.String("error", err.Error()),
			slog.String("learner_id", data.LearnerID.String()),
			slog.String("word_id", data.WordID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrSrsDataNotFound); err != nil {
		return err
	}

	log.Debug("srs data updated",
		slog.String("learner_id", data.LearnerID.String()),
		slog.String("word_id", data.WordID),
		slog.Int("interval", data.Interval))
	return nil
}

// ListByLearner implements store.SrsStore.ListByLearner.
func (s *SrsStore) ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.SrsData, error) {
	query := `SELECT ` + srsColumns + ` FROM srs_data WHERE learner_id = ? ORDER BY word_id`
	return s.list(ctx, "list srs data", query, learnerID)
}

// ListDue implements store.SrsStore.ListDue.
func (s *SrsStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	now time.Time,
) ([]*domain.SrsData, error) {
	query := `SELECT ` + srsColumns + ` FROM srs_data
		WHERE learner_id = ? AND next_review_date <= ?
		ORDER BY next_review_date, word_id`
	return s.list(ctx, "list due srs data", query, learnerID, now.UTC())
}

func (s *SrsStore) list(ctx context.Context, op, query string, args ...any) ([]*domain.SrsData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []srsRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, s.db.Rebind(query), args...); err != nil {
		log.Error("failed to "+op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to %s: %w", op, MapError(err))
	}

	out := make([]*domain.SrsData, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// CountDueByLearner implements store.SrsStore.CountDueByLearner.
func (s *SrsStore) CountDueByLearner(ctx context.Context, now time.Time) ([]store.LearnerDueCount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.Rebind(`
		SELECT learner_id, COUNT(*) AS due
		FROM srs_data
		WHERE next_review_date <= ?
		GROUP BY learner_id
		ORDER BY learner_id
	`)

	var counts []store.LearnerDueCount
	if err := sqlx.SelectContext(ctx, s.db, &counts, query, now.UTC()); err != nil {
		log.Error("failed to count due srs data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count due srs data: %w", MapError(err))
	}
	return counts, nil
}
