package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestNewDefaultService(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	require.NotNil(t, service)

	defaultService, ok := service.(*defaultService)
	require.True(t, ok, "Expected *defaultService type")
	assert.NotNil(t, defaultService.params)
	assert.NotNil(t, defaultService.clock)
	assert.Equal(t, time.UTC, service.Now().Location())
}

func TestNewServiceWithParams_NilParamsUsesDefaults(t *testing.T) {
	t.Parallel()
	service := NewServiceWithParams(nil, WithClock(nil))

	assert.Equal(t, NewDefaultParams(), service.Params())
	assert.False(t, service.Now().IsZero())
}

func TestService_ComputeNextState(t *testing.T) {
	t.Parallel()
	service := NewDefaultService(WithClock(fixedClock(testNow)))

	t.Run("first review is due immediately", func(t *testing.T) {
		t.Parallel()
		state, err := service.ComputeNextState(nil, domain.RatingGood)
		require.NoError(t, err)

		assert.Equal(t, 0, state.Repetition)
		assert.Equal(t, 2.5, state.EaseFactor)
		assert.Equal(t, 0, state.Interval)
		assert.True(t, state.NextReviewDate.Equal(testNow))
	})

	t.Run("second success schedules six days out", func(t *testing.T) {
		t.Parallel()
		state, err := service.ComputeNextState(
			&State{Repetition: 1, EaseFactor: 2.5, Interval: 1},
			domain.RatingGood,
		)
		require.NoError(t, err)

		assert.Equal(t, 2, state.Repetition)
		assert.Equal(t, 6, state.Interval)
		assert.True(t, state.NextReviewDate.Equal(testNow.AddDate(0, 0, 6)))
	})

	t.Run("failure after a long streak", func(t *testing.T) {
		t.Parallel()
		state, err := service.ComputeNextState(
			&State{Repetition: 5, EaseFactor: 2.3, Interval: 30},
			domain.RatingAgain,
		)
		require.NoError(t, err)

		assert.Equal(t, 0, state.Repetition)
		assert.Equal(t, 1, state.Interval)
	})

	t.Run("invalid rating", func(t *testing.T) {
		t.Parallel()
		_, err := service.ComputeNextState(nil, domain.Rating("perfect"))
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	})
}

func TestService_DueQueries(t *testing.T) {
	t.Parallel()
	service := NewDefaultService(WithClock(fixedClock(testNow)))

	overdue := recordDueAt(testNow.AddDate(0, 0, -2), 2.5)
	upcoming := recordDueAt(testNow.AddDate(0, 0, 1), 2.5)

	assert.True(t, service.IsDue(overdue))
	assert.Equal(t, 2, service.OverdueDays(overdue))
	assert.False(t, service.IsDue(upcoming))
	assert.Equal(t, 0, service.OverdueDays(upcoming))
}

func TestService_PostponeReview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService(WithClock(fixedClock(testNow)))

	record, err := domain.NewSrsData(uuid.New(), "apple", testNow.AddDate(0, 0, -10))
	require.NoError(t, err)
	record = record.WithSchedule(ComputeNextState(
		&record.Schedule, domain.RatingGood, record.UpdatedAt, service.Params(),
	))
	original := *record

	t.Run("pushes due date and keeps invariant", func(t *testing.T) {
		t.Parallel()
		postponed, err := service.PostponeReview(record, 3)
		require.NoError(t, err)

		assert.True(t, postponed.NextReviewDate.Equal(original.NextReviewDate.AddDate(0, 0, 3)))
		assert.Equal(t, original.Interval+3, postponed.Interval)
		assert.Equal(t, original.Repetition, postponed.Repetition)
		assert.Equal(t, original.EaseFactor, postponed.EaseFactor)
		assert.True(t, postponed.NextReviewDate.Equal(
			postponed.UpdatedAt.AddDate(0, 0, postponed.Interval)))
		assert.Equal(t, original, *record, "input record must not be modified")
	})

	t.Run("rejects fewer than one day", func(t *testing.T) {
		t.Parallel()
		_, err := service.PostponeReview(record, 0)
		assert.ErrorIs(t, err, ErrInvalidDays)
	})

	t.Run("rejects nil record", func(t *testing.T) {
		t.Parallel()
		_, err := service.PostponeReview(nil, 2)
		assert.ErrorIs(t, err, ErrNilRecord)
	})
}

func TestService_Preview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	states, err := service.Preview([]domain.Rating{
		domain.RatingGood, domain.RatingGood, domain.RatingGood, domain.RatingAgain,
	}, testNow)
	require.NoError(t, err)
	require.Len(t, states, 5)

	intervals := make([]int, len(states))
	for i, s := range states {
		intervals[i] = s.Interval
	}
	assert.Equal(t, []int{0, 1, 6, 15, 1}, intervals)

	for i := 1; i < len(states); i++ {
		assert.True(t, states[i].UpdatedAt.Equal(states[i-1].NextReviewDate),
			"review %d should happen when the previous state falls due", i)
	}

	_, err = service.Preview([]domain.Rating{"bogus"}, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
}
