// Package migrations applies the embedded goose schema migrations for the
// supported SQL dialects.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/pressly/goose/v3"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var embedded embed.FS

// Supported driver names, matching the names registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnsupportedDriver is returned for a driver without embedded migrations.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Status describes one migration and whether it has been applied.
type Status struct {
	Version   int64     `json:"version"`
	Path      string    `json:"path"`
	Applied   bool      `json:"applied"`
	AppliedAt time.Time `json:"applied_at,omitempty"`
}

// Files returns the migration files for a driver.
func Files(driver string) (fs.FS, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
		return fs.Sub(embedded, "sql/"+driver)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func newProvider(driver string, db *sql.DB) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	fsys, err := Files(driver)
	if err != nil {
		return nil, err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Up applies all pending migrations and returns how many were applied.
func Up(ctx context.Context, driver string, db *sql.DB) (int, error) {
	log := logger.FromContext(ctx).With(
		slog.String("component", "migrations"),
		slog.String("driver", driver))

	provider, err := newProvider(driver, db)
	if err != nil {
		return 0, err
	}

	startTime := time.Now()
	results, err := provider.Up(ctx)
	if err != nil {
		log.Error("migration up failed", slog.String("error", err.Error()))
		return len(results), fmt.Errorf("migration up failed: %w", err)
	}

	for _, r := range results {
		log.Debug("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Duration("duration", r.Duration))
	}
	log.Info("migrations applied",
		slog.Int("count", len(results)),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return len(results), nil
}

// Down rolls back the most recently applied migration. It returns false when
// there was nothing to roll back.
func Down(ctx context.Context, driver string, db *sql.DB) (bool, error) {
	log := logger.FromContext(ctx).With(
		slog.String("component", "migrations"),
		slog.String("driver", driver))

	provider, err := newProvider(driver, db)
	if err != nil {
		return false, err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			log.Info("no migration to roll back")
			return false, nil
		}
		log.Error("migration down failed", slog.String("error", err.Error()))
		return false, fmt.Errorf("migration down failed: %w", err)
	}

	log.Info("rolled back migration",
		slog.Int64("version", result.Source.Version),
		slog.String("path", result.Source.Path))
	return true, nil
}

// Statuses reports every known migration in version order.
func Statuses(ctx context.Context, driver string, db *sql.DB) ([]Status, error) {
	provider, err := newProvider(driver, db)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status failed: %w", err)
	}

	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, Status{
			Version:   s.Source.Version,
			Path:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}
