// Package sqlstore provides the SQL implementations of the interfaces defined
// in internal/store. A single implementation serves PostgreSQL (through the
// pgx stdlib driver) and SQLite (through modernc.org/sqlite): queries are
// written with '?' placeholders and rebound for the connected driver, and
// rows are mapped to domain types with sqlx struct scanning.
package sqlstore
