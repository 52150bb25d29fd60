// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of the SQL dialect in use. Implementations live in
// internal/platform/sqlstore.
package store
