package migrations_test

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/phrazzld/lingo-review/internal/platform/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestFiles(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{migrations.DriverPostgres, migrations.DriverSQLite} {
		fsys, err := migrations.Files(driver)
		require.NoError(t, err, driver)
		names, err := fs.Glob(fsys, "*.sql")
		require.NoError(t, err)
		assert.Len(t, names, 3, driver)
	}

	_, err := migrations.Files("mysql")
	assert.ErrorIs(t, err, migrations.ErrUnsupportedDriver)
}

func TestUpDownStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openSQLite(t)

	applied, err := migrations.Up(ctx, migrations.DriverSQLite, db)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	// Idempotent.
	applied, err = migrations.Up(ctx, migrations.DriverSQLite, db)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	statuses, err := migrations.Statuses(ctx, migrations.DriverSQLite, db)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for i, s := range statuses {
		assert.Equal(t, int64(i+1), s.Version)
		assert.True(t, s.Applied)
	}

	_, err = db.ExecContext(ctx, `SELECT learner_id FROM srs_data`)
	require.NoError(t, err)

	rolledBack, err := migrations.Down(ctx, migrations.DriverSQLite, db)
	require.NoError(t, err)
	assert.True(t, rolledBack)

	statuses, err = migrations.Statuses(ctx, migrations.DriverSQLite, db)
	require.NoError(t, err)
	assert.False(t, statuses[2].Applied)

	_, err = db.ExecContext(ctx, `SELECT id FROM review_log`)
	assert.Error(t, err)
}

func TestUnsupportedDriver(t *testing.T) {
	t.Parallel()
	db := openSQLite(t)

	_, err := migrations.Up(context.Background(), "mysql", db)
	assert.ErrorIs(t, err, migrations.ErrUnsupportedDriver)
}
