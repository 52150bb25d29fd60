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

const wrongAnswerColumns = `id, learner_id, exercise_id, activity_type, correct_answer,
	user_answer, mastered, consecutive_correct, created_at, updated_at`

type wrongAnswerRow struct {
	ID                 uuid.UUID `db:"id"`
	LearnerID          uuid.UUID `db:"learner_id"`
	ExerciseID         string    `db:"exercise_id"`
	ActivityType       string    `db:"activity_type"`
	CorrectAnswer      string    `db:"correct_answer"`
	UserAnswer         string    `db:"user_answer"`
	Mastered           bool      `db:"mastered"`
	ConsecutiveCorrect int       `db:"consecutive_correct"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (r wrongAnswerRow) toDomain() domain.WrongAnswer {
	return domain.WrongAnswer{
		ID:                 r.ID,
		LearnerID:          r.LearnerID,
		ExerciseID:         r.ExerciseID,
		Type:               domain.ActivityType(r.ActivityType),
		CorrectAnswer:      r.CorrectAnswer,
		UserAnswer:         r.UserAnswer,
		Mastered:           r.Mastered,
		ConsecutiveCorrect: r.ConsecutiveCorrect,
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
}

// WrongAnswerStore implements store.WrongAnswerStore over sqlx.
type WrongAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWrongAnswerStore creates a WrongAnswerStore using the given connection or transaction.
// If logger is nil, a default logger will be used.
func NewWrongAnswerStore(db store.DBTX, logger *slog.Logger) *WrongAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WrongAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "wrong_answer_store")),
	}
}

var _ store.WrongAnswerStore = (*WrongAnswerStore)(nil)

// WithTx implements store.WrongAnswerStore.WithTx.
func (s *WrongAnswerStore) WithTx(tx *sqlx.Tx) store.WrongAnswerStore {
	return &WrongAnswerStore{db: tx, logger: s.logger}
}

// Create implements store.WrongAnswerStore.Create.
func (s *WrongAnswerStore) Create(ctx context.Context, wa *domain.WrongAnswer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := wa.Validate(); err != nil {
		log.Warn("wrong answer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("wrong_answer_id", wa.ID.String()))
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO wrong_answers (` + wrongAnswerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := s.db.ExecContext(ctx, query,
		wa.ID,
		wa.LearnerID,
		wa.ExerciseID,
		string(wa.Type),
		wa.CorrectAnswer,
		wa.UserAnswer,
		wa.Mastered,
		wa.ConsecutiveCorrect,
		wa.CreatedAt.UTC(),
		wa.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to create wrong answer",
			slog.String("error", err.Error()),
			slog.String("wrong_answer_id", wa.ID.String()),
			slog.String("learner_id", wa.LearnerID.String()))
		return MapError(err)
	}

	log.Info("wrong answer recorded",
		slog.String("wrong_answer_id", wa.ID.String()),
		slog.String("learner_id", wa.LearnerID.String()),
		slog.String("type", string(wa.Type)))
	return nil
}

// Get implements store.WrongAnswerStore.Get.
func (s *WrongAnswerStore) Get(ctx context.Context, id uuid.UUID) (*domain.WrongAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.Rebind(`SELECT ` + wrongAnswerColumns + ` FROM wrong_answers WHERE id = ?`)

	var row wrongAnswerRow
	if err := sqlx.GetContext(ctx, s.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("wrong answer not found", slog.String("wrong_answer_id", id.String()))
			return nil, store.ErrWrongAnswerNotFound
		}
		log.Error("failed to get wrong answer",
			slog.String("error", err.Error()),
			slog.String("wrong_answer_id", id.String()))
		return nil, MapError(err)
	}

	wa := row.toDomain()
	return &wa, nil
}

// ListByLearner implements store.WrongAnswerStore.ListByLearner.
func (s *WrongAnswerStore) ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]domain.WrongAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.Rebind(`SELECT ` + wrongAnswerColumns + ` FROM wrong_answers
		WHERE learner_id = ?
		ORDER BY created_at, id`)

	var rows []wrongAnswerRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, learnerID); err != nil {
		log.Error("failed to list wrong answers",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, fmt.Errorf("failed to list wrong answers: %w", MapError(err))
	}

	out := make([]domain.WrongAnswer, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// Update implements store.WrongAnswerStore.Update.
func (s *WrongAnswerStore) Update(ctx context.Context, wa *domain.WrongAnswer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := wa.Validate(); err != nil {
		log.Warn("wrong answer validation failed during update",
			slog.String("error", err.Error()),
			slog.String("wrong_answer_id", wa.ID.String()))
		return err
	}

	query := s.db.Rebind(`
		UPDATE wrong_answers
		SET mastered = ?, consecutive_correct = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := s.db.ExecContext(ctx, query,
		wa.Mastered,
		wa.ConsecutiveCorrect,
		wa.UpdatedAt.UTC(),
		wa.ID,
	)
	if err != nil {
		log.Error("failed to update wrong answer",
			slog.String("error", err.Error()),
			slog.String("wrong_answer_id", wa.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrWrongAnswerNotFound); err != nil {
		return err
	}

	log.Debug("wrong answer updated",
		slog.String("wrong_answer_id", wa.ID.String()),
		slog.Bool("mastered", wa.Mastered),
		slog.Int("consecutive_correct", wa.ConsecutiveCorrect))
	return nil
}
