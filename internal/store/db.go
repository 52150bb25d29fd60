package store

import (
	"github.com/jmoiron/sqlx"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sqlx.DB and *sqlx.Tx, allowing our code
// to work with either a database connection or a transaction. Rebind
// converts '?' placeholders into the connected driver's bind style.
type DBTX interface {
	sqlx.ExtContext
}
