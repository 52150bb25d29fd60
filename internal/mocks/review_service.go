package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/service/review"
	"github.com/phrazzld/lingo-review/internal/store"
)

// MockReviewService implements review.Service for testing
type MockReviewService struct {
	SubmitRatingFn func(ctx context.Context, learnerID uuid.UUID, wordID string, rating domain.Rating) (*domain.SrsData, error)
	DueQueueFn     func(ctx context.Context, learnerID uuid.UUID, limit int) ([]review.QueueItem, error)
	PostponeFn     func(ctx context.Context, learnerID uuid.UUID, wordID string, days int) (*domain.SrsData, error)
	StatsFn        func(ctx context.Context, learnerID uuid.UUID) (*review.Stats, error)
	DueDigestFn    func(ctx context.Context) ([]store.LearnerDueCount, error)

	// Default response values
	Data   *domain.SrsData
	Queue  []review.QueueItem
	Result *review.Stats
	Digest []store.LearnerDueCount
	Err    error

	mu    sync.Mutex
	calls map[string]int
}

var _ review.Service = (*MockReviewService)(nil)

func (m *MockReviewService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockReviewService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// SubmitRating implements the review.Service interface
func (m *MockReviewService) SubmitRating(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID string,
	rating domain.Rating,
) (*domain.SrsData, error) {
	m.record("SubmitRating")
	if m.SubmitRatingFn != nil {
		return m.SubmitRatingFn(ctx, learnerID, wordID, rating)
	}
	return m.Data, m.Err
}

// DueQueue implements the review.Service interface
func (m *MockReviewService) DueQueue(ctx context.Context, learnerID uuid.UUID, limit int) ([]review.QueueItem, error) {
	m.record("DueQueue")
	if m.DueQueueFn != nil {
		return m.DueQueueFn(ctx, learnerID, limit)
	}
	return m.Queue, m.Err
}

// Postpone implements the review.Service interface
func (m *MockReviewService) Postpone(
	ctx context.Context,
	learnerID uuid.UUID,
	wordID string,
	days int,
) (*domain.SrsData, error) {
	m.record("Postpone")
	if m.PostponeFn != nil {
		return m.PostponeFn(ctx, learnerID, wordID, days)
	}
	return m.Data, m.Err
}

// Stats implements the review.Service interface
func (m *MockReviewService) Stats(ctx context.Context, learnerID uuid.UUID) (*review.Stats, error) {
	m.record("Stats")
	if m.StatsFn != nil {
		return m.StatsFn(ctx, learnerID)
	}
	return m.Result, m.Err
}

// DueDigest implements the review.Service interface
func (m *MockReviewService) DueDigest(ctx context.Context) ([]store.LearnerDueCount, error) {
	m.record("DueDigest")
	if m.DueDigestFn != nil {
		return m.DueDigestFn(ctx)
	}
	return m.Digest, m.Err
}
