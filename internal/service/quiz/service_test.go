package quiz_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/distractor"
	"github.com/phrazzld/lingo-review/internal/platform/migrations"
	"github.com/phrazzld/lingo-review/internal/platform/sqlstore"
	"github.com/phrazzld/lingo-review/internal/service"
	"github.com/phrazzld/lingo-review/internal/service/quiz"
	"github.com/phrazzld/lingo-review/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keepOrder leaves the generated options in insertion order.
func keepOrder() float64 { return 0.999999 }

func newService(t *testing.T, opts ...distractor.Option) quiz.Service {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = migrations.Up(ctx, migrations.DriverSQLite, db.DB)
	require.NoError(t, err)

	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	opts = append([]distractor.Option{distractor.WithRandom(keepOrder)}, opts...)
	return quiz.NewService(
		db,
		sqlstore.NewWrongAnswerStore(db, nil),
		distractor.NewGenerator(opts...),
		nil,
		quiz.WithClock(clock),
	)
}

func record(t *testing.T, svc quiz.Service, learnerID uuid.UUID, correct, user string) *domain.WrongAnswer {
	t.Helper()
	wa, err := svc.RecordWrongAnswer(context.Background(), learnerID, quiz.RecordInput{
		ExerciseID:    "ex-" + correct,
		Type:          domain.ActivityVocabulary,
		CorrectAnswer: correct,
		UserAnswer:    user,
	})
	require.NoError(t, err)
	return wa
}

func TestRecordWrongAnswer(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()

	wa := record(t, svc, uuid.New(), "apple", "apel")
	assert.NotEqual(t, uuid.Nil, wa.ID)
	assert.False(t, wa.Mastered)
	assert.Equal(t, 0, wa.ConsecutiveCorrect)

	_, err := svc.RecordWrongAnswer(ctx, uuid.New(), quiz.RecordInput{
		ExerciseID: "ex-1",
		Type:       domain.ActivityVocabulary,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.RecordWrongAnswer(ctx, uuid.Nil, quiz.RecordInput{})
	assert.ErrorIs(t, err, quiz.ErrInvalidLearner)
}

func TestBuildQuiz_FromPeers(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	learnerID := uuid.New()

	target := record(t, svc, learnerID, "apple", "apel")
	record(t, svc, learnerID, "banana", "")
	record(t, svc, learnerID, "cherry", "")
	record(t, svc, learnerID, "grape", "")

	q, err := svc.BuildQuiz(ctx, learnerID, target.ID, domain.LevelA1)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "apel", "banana", "cherry"}, q.Options)
	assert.Equal(t, 0, q.CorrectIndex)
	assert.Equal(t, 1, q.UserAnswerIndex)
	assert.False(t, q.Degraded)
	assert.Equal(t, target.ID, q.WrongAnswerID)
	assert.Equal(t, domain.LevelA1, q.Level)
}

func TestBuildQuiz_SkipsMasteredPeers(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	learnerID := uuid.New()

	target := record(t, svc, learnerID, "apple", "")
	mastered := record(t, svc, learnerID, "banana", "")
	record(t, svc, learnerID, "cherry", "")
	for range quiz.DefaultMasteryThreshold {
		_, err := svc.RecordAttempt(ctx, learnerID, mastered.ID, true)
		require.NoError(t, err)
	}

	q, err := svc.BuildQuiz(ctx, learnerID, target.ID, domain.LevelA1)
	require.NoError(t, err)
	assert.NotContains(t, q.Options, "banana")
	assert.Contains(t, q.Options, "cherry")
	assert.Equal(t, distractor.NoUserAnswer, q.UserAnswerIndex)
}

func TestBuildQuiz_Degraded(t *testing.T) {
	t.Parallel()
	svc := newService(t, distractor.WithBank(distractor.Bank{}))
	ctx := context.Background()
	learnerID := uuid.New()

	target := record(t, svc, learnerID, "apple", "apel")

	q, err := svc.BuildQuiz(ctx, learnerID, target.ID, domain.LevelB2)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "apel"}, q.Options)
	assert.True(t, q.Degraded)
}

func TestBuildQuiz_Errors(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	owner := uuid.New()
	target := record(t, svc, owner, "apple", "apel")

	_, err := svc.BuildQuiz(ctx, uuid.New(), target.ID, domain.LevelA1)
	assert.ErrorIs(t, err, service.ErrNotOwned)

	_, err = svc.BuildQuiz(ctx, owner, uuid.New(), domain.LevelA1)
	assert.ErrorIs(t, err, store.ErrWrongAnswerNotFound)

	_, err = svc.BuildQuiz(ctx, owner, target.ID, domain.Level("Z9"))
	assert.ErrorIs(t, err, domain.ErrInvalidLevel)
}

func TestRecordAttempt_Mastery(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ctx := context.Background()
	learnerID := uuid.New()
	wa := record(t, svc, learnerID, "apple", "apel")

	tests := []struct {
		correct  bool
		streak   int
		mastered bool
	}{
		{true, 1, false},
		{true, 2, false},
		{false, 0, false},
		{true, 1, false},
		{true, 2, false},
		{true, 3, true},
		{true, 4, true},
		{false, 0, false},
	}

	for i, tt := range tests {
		got, err := svc.RecordAttempt(ctx, learnerID, wa.ID, tt.correct)
		require.NoError(t, err, "attempt %d", i)
		assert.Equal(t, tt.streak, got.ConsecutiveCorrect, "attempt %d", i)
		assert.Equal(t, tt.mastered, got.Mastered, "attempt %d", i)
	}

	_, err := svc.RecordAttempt(ctx, uuid.New(), wa.ID, true)
	assert.ErrorIs(t, err, service.ErrNotOwned)

	_, err = svc.RecordAttempt(ctx, learnerID, uuid.New(), true)
	assert.ErrorIs(t, err, store.ErrWrongAnswerNotFound)
}
