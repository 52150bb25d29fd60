package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	"github.com/phrazzld/lingo-review/internal/platform/migrations"
	"github.com/phrazzld/lingo-review/internal/platform/sqlstore"
	"github.com/phrazzld/lingo-review/internal/redact"
)

// openDatabase connects to the configured database and, when migrate is set,
// applies pending migrations. The SQLite driver keeps a single connection, so
// in-memory databases are migrated and served through the same handle.
func openDatabase(ctx context.Context, cfg *config.Config, migrate bool) (*sqlx.DB, error) {
	log := logger.FromContext(ctx)

	db, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %s", redact.Error(err))
	}

	if !migrate {
		return db, nil
	}

	applied, err := migrations.Up(ctx, cfg.Database.Driver, db.DB)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info("database migrations applied", slog.Int("count", applied))

	return db, nil
}
