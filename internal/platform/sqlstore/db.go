package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/lingo-review/internal/config"
	"github.com/phrazzld/lingo-review/internal/platform/logger"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// Driver names as registered with database/sql.
const (
	pgxDriver    = "pgx"
	sqliteDriver = "sqlite"
)

const defaultPingTimeout = 5 * time.Second

func init() {
	sqlx.BindDriver(sqliteDriver, sqlx.QUESTION)
}

// driverName maps a configured dialect to its database/sql driver.
func driverName(dialect string) (string, error) {
	switch dialect {
	case "postgres":
		return pgxDriver, nil
	case "sqlite":
		return sqliteDriver, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", dialect)
	}
}

// sqliteDSN makes sure times are stored in a sortable text layout that the
// driver parses back into time.Time.
func sqliteDSN(url string) string {
	if strings.Contains(url, "_time_format=") {
		return url
	}
	if strings.Contains(url, "?") {
		return url + "&_time_format=sqlite"
	}
	return url + "?_time_format=sqlite"
}

// Open connects to the database described by cfg and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	log := logger.FromContext(ctx)

	driver, err := driverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.URL
	if driver == sqliteDriver {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == sqliteDriver {
		// One connection keeps in-memory databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		slog.String("driver", cfg.Driver))
	return db, nil
}

// Dialect reports the configured dialect name of an open database, as used by
// the migrations package.
func Dialect(db *sqlx.DB) string {
	if db.DriverName() == pgxDriver {
		return "postgres"
	}
	return "sqlite"
}

func isPostgres(db interface{ DriverName() string }) bool {
	return db.DriverName() == pgxDriver
}
