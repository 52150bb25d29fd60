package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/platform/migrations"
	"github.com/phrazzld/lingo-review/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

// setupDB opens a private in-memory SQLite database with all migrations applied.
func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Up(ctx, migrations.DriverSQLite, db.DB)
	require.NoError(t, err)
	return db
}

func mustSrsData(t *testing.T, learnerID uuid.UUID, wordID string, next time.Time) *domain.SrsData {
	t.Helper()
	data, err := domain.NewSrsData(learnerID, wordID, testNow)
	require.NoError(t, err)
	data.NextReviewDate = next
	return data
}

func mustWrongAnswer(t *testing.T, learnerID uuid.UUID, exerciseID, correct string) *domain.WrongAnswer {
	t.Helper()
	wa, err := domain.NewWrongAnswer(learnerID, exerciseID, domain.ActivityVocabulary, correct, "wrong")
	require.NoError(t, err)
	return wa
}
