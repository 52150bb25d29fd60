package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/distractor"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/service"
	"github.com/phrazzld/lingo-review/internal/store"
)

var _ Service = (*serviceImpl)(nil)

// Option configures the quiz service.
type Option func(*serviceImpl)

// WithMasteryThreshold overrides DefaultMasteryThreshold. Values below 1 are ignored.
func WithMasteryThreshold(n int) Option {
	return func(s *serviceImpl) {
		if n >= 1 {
			s.masteryThreshold = n
		}
	}
}

// WithClock replaces the system clock used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *serviceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

type serviceImpl struct {
	db               *sqlx.DB
	wrongAnswers     store.WrongAnswerStore
	generator        *distractor.Generator
	masteryThreshold int
	clock            func() time.Time
	logger           *slog.Logger
}

// NewService creates a quiz Service.
func NewService(
	db *sqlx.DB,
	wrongAnswers store.WrongAnswerStore,
	generator *distractor.Generator,
	logger *slog.Logger,
	opts ...Option,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if wrongAnswers == nil {
		panic("wrongAnswers cannot be nil")
	}
	if generator == nil {
		generator = distractor.NewGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		db:               db,
		wrongAnswers:     wrongAnswers,
		generator:        generator,
		masteryThreshold: DefaultMasteryThreshold,
		clock:            func() time.Time { return time.Now().UTC() },
		logger:           logger.With(slog.String("component", "quiz_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordWrongAnswer implements Service.RecordWrongAnswer.
func (s *serviceImpl) RecordWrongAnswer(
	ctx context.Context,
	learnerID uuid.UUID,
	input RecordInput,
) (*domain.WrongAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}

	wa, err := domain.NewWrongAnswer(learnerID, input.ExerciseID, input.Type, input.CorrectAnswer, input.UserAnswer)
	if err != nil {
		log.Warn("invalid wrong answer",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, err
	}
	now := s.clock()
	wa.CreatedAt, wa.UpdatedAt = now, now

	if err := s.wrongAnswers.Create(ctx, wa); err != nil {
		return nil, service.NewServiceError("record_wrong_answer", "failed to store wrong answer", err)
	}
	return wa, nil
}

// loadOwned fetches a wrong answer and checks that learnerID owns it.
func loadOwned(
	ctx context.Context,
	wrongAnswers store.WrongAnswerStore,
	learnerID, id uuid.UUID,
) (*domain.WrongAnswer, error) {
	wa, err := wrongAnswers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if wa.LearnerID != learnerID {
		return nil, service.ErrNotOwned
	}
	return wa, nil
}

// BuildQuiz implements Service.BuildQuiz.
func (s *serviceImpl) BuildQuiz(
	ctx context.Context,
	learnerID uuid.UUID,
	wrongAnswerID uuid.UUID,
	level domain.Level,
) (*Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLevel, level)
	}

	target, err := loadOwned(ctx, s.wrongAnswers, learnerID, wrongAnswerID)
	if err != nil {
		if errors.Is(err, store.ErrWrongAnswerNotFound) || errors.Is(err, service.ErrNotOwned) {
			log.Warn("quiz target unavailable",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()),
				slog.String("wrong_answer_id", wrongAnswerID.String()))
			return nil, err
		}
		return nil, service.NewServiceError("build_quiz", "failed to load wrong answer", err)
	}

	pool, err := s.wrongAnswers.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, service.NewServiceError("build_quiz", "failed to load learner pool", err)
	}

	generated := s.generator.Generate(*target, pool, level)
	quiz := &Quiz{
		WrongAnswerID:   target.ID,
		ExerciseID:      target.ExerciseID,
		Type:            target.Type,
		Level:           level,
		Options:         generated.Options,
		CorrectIndex:    generated.CorrectIndex,
		UserAnswerIndex: generated.UserAnswerIndex,
		Degraded:        len(generated.Options) < s.generator.Config().MinOptions,
	}

	if quiz.Degraded {
		log.Warn("quiz built with fewer options than requested",
			slog.String("wrong_answer_id", target.ID.String()),
			slog.Int("options", len(quiz.Options)),
			slog.Int("wanted", s.generator.Config().MinOptions))
	}
	return quiz, nil
}

// RecordAttempt implements Service.RecordAttempt.
func (s *serviceImpl) RecordAttempt(
	ctx context.Context,
	learnerID uuid.UUID,
	wrongAnswerID uuid.UUID,
	correct bool,
) (*domain.WrongAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}

	var updated *domain.WrongAnswer
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		wrongAnswers := s.wrongAnswers.WithTx(tx)

		wa, err := loadOwned(ctx, wrongAnswers, learnerID, wrongAnswerID)
		if err != nil {
			return err
		}

		if correct {
			wa.ConsecutiveCorrect++
			if wa.ConsecutiveCorrect >= s.masteryThreshold {
				wa.Mastered = true
			}
		} else {
			wa.ConsecutiveCorrect = 0
			wa.Mastered = false
		}
		wa.UpdatedAt = s.clock()

		if err := wrongAnswers.Update(ctx, wa); err != nil {
			return err
		}
		updated = wa
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrWrongAnswerNotFound) || errors.Is(err, service.ErrNotOwned) {
			return nil, err
		}
		log.Error("failed to record attempt",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("wrong_answer_id", wrongAnswerID.String()))
		return nil, service.NewServiceError("record_attempt", "failed to record attempt", err)
	}

	log.Debug("attempt recorded",
		slog.String("wrong_answer_id", wrongAnswerID.String()),
		slog.Bool("correct", correct),
		slog.Int("consecutive_correct", updated.ConsecutiveCorrect),
		slog.Bool("mastered", updated.Mastered))
	return updated, nil
}
