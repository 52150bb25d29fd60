package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/srs"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/service"
	"github.com/phrazzld/lingo-review/internal/store"
)

var _ Service = (*serviceImpl)(nil)

// maxRatingAttempts bounds SubmitRating retries after a duplicate first insert.
const maxRatingAttempts = 2

type serviceImpl struct {
	db         *sqlx.DB
	srsStore   store.SrsStore
	logStore   store.ReviewLogStore
	srsService srs.Service
	logger     *slog.Logger
}

// NewService creates a review Service. The stores must be bound to db so
// that their WithTx variants join the service's transactions.
func NewService(
	db *sqlx.DB,
	srsStore store.SrsStore,
	logStore store.ReviewLogStore,
	srsService srs.Service,
	logger *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if srsStore == nil {
		panic("srsStore cannot be nil")
	}
	if logStore == nil {
		panic("logStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:         db,
		srsStore:   srsStore,
		logStore:   logStore,
		srsService: srsService,
		logger:     logger.With(slog.String("component", "review_service")),
	}
}

func validateKeys(learnerID uuid.UUID, wordID string) error {
	if learnerID == uuid.Nil {
		return ErrInvalidLearner
	}
	if strings.TrimSpace(wordID) == "" {
		return ErrInvalidWord
	}
	return nil
}

// SubmitRating implements Service.SubmitRating.
func (s *serviceImpl) SubmitRating(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID string,
	rating domain.Rating,
) (*domain.SrsData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateKeys(learnerID, wordID); err != nil {
		return nil, err
	}
	if !rating.IsValid() {
		log.Warn("invalid review rating",
			slog.String("learner_id", learnerID.String()),
			slog.String("word_id", wordID),
			slog.String("rating", string(rating)))
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRating, rating)
	}

	var (
		updated *domain.SrsData
		err     error
	)
	for attempt := 1; attempt <= maxRatingAttempts; attempt++ {
		updated, err = s.applyRating(ctx, learnerID, wordID, rating)
		if err == nil || !errors.Is(err, store.ErrDuplicate) || attempt == maxRatingAttempts {
			break
		}
		// A concurrent first review created the record after our read.
		// Its insert is committed, so the retry takes the update path.
		log.Warn("srs data created concurrently, retrying rating",
			slog.String("learner_id", learnerID.String()),
			slog.String("word_id", wordID))
	}
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInvalidRating) {
			return nil, err
		}
		log.Error("failed to submit rating",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("word_id", wordID))
		return nil, service.NewServiceError("submit_rating", "failed to submit rating", err)
	}

	log.Debug("rating applied",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID),
		slog.String("rating", string(rating)),
		slog.Int("repetition", updated.Repetition),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Int("interval", updated.Interval),
		slog.Time("next_review_date", updated.NextReviewDate))
	return updated, nil
}

// applyRating loads, advances and persists the learner's schedule for one
// word in a single transaction, appending the review log entry alongside.
func (s *serviceImpl) applyRating(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID string,
	rating domain.Rating,
) (*domain.SrsData, error) {
	var updated *domain.SrsData
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		srsStore := s.srsStore.WithTx(tx)

		existing, err := srsStore.GetForUpdate(ctx, learnerID, wordID)
		if err != nil && !errors.Is(err, store.ErrSrsDataNotFound) {
			return fmt.Errorf("failed to load srs data: %w", err)
		}

		var prev *srs.State
		if existing != nil {
			prev = &existing.Schedule
		}

		state, err := s.srsService.ComputeNextState(prev, rating)
		if err != nil {
			return err
		}

		if existing == nil {
			updated = &domain.SrsData{
				LearnerID: learnerID,
				WordID:    wordID,
				Schedule:  state,
				CreatedAt: state.UpdatedAt,
			}
			if err := srsStore.Create(ctx, updated); err != nil {
				return fmt.Errorf("failed to create srs data: %w", err)
			}
		} else {
			updated = existing.WithSchedule(state)
			if err := srsStore.Update(ctx, updated); err != nil {
				return fmt.Errorf("failed to update srs data: %w", err)
			}
		}

		entry := &domain.ReviewLogEntry{
			ID:         uuid.New(),
			LearnerID:  learnerID,
			WordID:     wordID,
			Rating:     rating,
			Score:      srs.RatingScore(rating),
			Interval:   state.Interval,
			ReviewedAt: state.UpdatedAt,
		}
		if err := s.logStore.WithTx(tx).Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DueQueue implements Service.DueQueue.
func (s *serviceImpl) DueQueue(ctx context.Context, learnerID uuid.UUID, limit int) ([]QueueItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}
	if limit <= 0 {
		limit = DefaultQueueLimit
	}
	limit = min(limit, MaxQueueLimit)

	now := s.srsService.Now()
	records, err := s.srsStore.ListDue(ctx, learnerID, now)
	if err != nil {
		log.Error("failed to list due words",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, service.NewServiceError("due_queue", "failed to list due words", err)
	}

	items := make([]srs.Ranked[struct{}], 0, len(records))
	for _, r := range records {
		items = append(items, srs.Ranked[struct{}]{Record: r})
	}
	ranked := srs.RankByPriority(items, now)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	queue := make([]QueueItem, 0, len(ranked))
	for _, r := range ranked {
		queue = append(queue, QueueItem{
			WordID:         r.Record.WordID,
			Repetition:     r.Record.Repetition,
			EaseFactor:     r.Record.EaseFactor,
			Interval:       r.Record.Interval,
			NextReviewDate: r.Record.NextReviewDate,
			OverdueDays:    srs.OverdueDays(r.Record, now),
		})
	}

	log.Debug("built due queue",
		slog.String("learner_id", learnerID.String()),
		slog.Int("due", len(records)),
		slog.Int("returned", len(queue)))
	return queue, nil
}

// Postpone implements Service.Postpone.
func (s *serviceImpl) Postpone(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID string,
	days int,
) (*domain.SrsData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateKeys(learnerID, wordID); err != nil {
		return nil, err
	}
	if days < 1 {
		return nil, srs.ErrInvalidDays
	}

	var postponed *domain.SrsData
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		srsStore := s.srsStore.WithTx(tx)

		existing, err := srsStore.GetForUpdate(ctx, learnerID, wordID)
		if err != nil {
			if errors.Is(err, store.ErrSrsDataNotFound) {
				return ErrWordNotTracked
			}
			return fmt.Errorf("failed to load srs data: %w", err)
		}

		postponed, err = s.srsService.PostponeReview(existing, days)
		if err != nil {
			return err
		}
		if err := srsStore.Update(ctx, postponed); err != nil {
			return fmt.Errorf("failed to update srs data: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWordNotTracked) || errors.Is(err, srs.ErrInvalidDays) {
			return nil, err
		}
		log.Error("failed to postpone review",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("word_id", wordID))
		return nil, service.NewServiceError("postpone", "failed to postpone review", err)
	}

	log.Info("review postponed",
		slog.String("learner_id", learnerID.String()),
		slog.String("word_id", wordID),
		slog.Int("days", days),
		slog.Time("next_review_date", postponed.NextReviewDate))
	return postponed, nil
}

// Stats implements Service.Stats.
func (s *serviceImpl) Stats(ctx context.Context, learnerID uuid.UUID) (*Stats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}

	records, err := s.srsStore.ListByLearner(ctx, learnerID)
	if err != nil {
		log.Error("failed to list srs data",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, service.NewServiceError("stats", "failed to list tracked words", err)
	}

	summary, err := s.logStore.Summary(ctx, learnerID)
	if err != nil {
		log.Error("failed to summarize review log",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, service.NewServiceError("stats", "failed to summarize reviews", err)
	}

	stats := &Stats{
		Tracked:      len(records),
		Reviews:      summary.Reviews,
		AverageScore: summary.AverageScore,
	}
	for _, r := range records {
		if s.srsService.IsDue(r) {
			stats.DueNow++
		}
	}
	return stats, nil
}

// DueDigest implements Service.DueDigest.
func (s *serviceImpl) DueDigest(ctx context.Context) ([]store.LearnerDueCount, error) {
	counts, err := s.srsStore.CountDueByLearner(ctx, s.srsService.Now())
	if err != nil {
		return nil, service.NewServiceError("due_digest", "failed to count due words", err)
	}
	return counts, nil
}
