package sqlstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/platform/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewLogStore_Summary(t *testing.T) {
	t.Parallel()
	db := setupDB(t)
	s := sqlstore.NewReviewLogStore(db, nil)
	ctx := context.Background()

	learnerID := uuid.New()

	empty, err := s.Summary(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Reviews)
	assert.InDelta(t, 0.0, empty.AverageScore, 1e-9)

	for _, r := range []domain.Rating{domain.RatingGood, domain.RatingAgain, domain.RatingEasy} {
		entry := &domain.ReviewLogEntry{
			LearnerID:  learnerID,
			WordID:     "w1",
			Rating:     r,
			Score:      map[domain.Rating]int{domain.RatingGood: 4, domain.RatingAgain: 0, domain.RatingEasy: 5}[r],
			Interval:   1,
			ReviewedAt: testNow,
		}
		require.NoError(t, s.Append(ctx, entry))
		assert.NotEqual(t, uuid.Nil, entry.ID)
	}
	require.NoError(t, s.Append(ctx, &domain.ReviewLogEntry{
		LearnerID: uuid.New(), WordID: "w1", Rating: domain.RatingHard, Score: 2, ReviewedAt: testNow,
	}))

	summary, err := s.Summary(ctx, learnerID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Reviews)
	assert.InDelta(t, 3.0, summary.AverageScore, 1e-9)
}
