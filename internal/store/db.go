// Package store defines the persistence contracts the services depend on.
// Implementations live under internal/platform.
package store

import (
	"context"
	"database/sql"
)

// DBTX is implemented by both *sql.DB and *sql.Tx, so stores can run either
// directly against the pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Transactor runs a function inside a transaction. Services depend on it
// instead of *sql.DB so they can be tested without a database.
type Transactor interface {
	RunInTx(ctx context.Context, fn TxFn) error
}

// SQLTransactor is the Transactor backed by a *sql.DB.
type SQLTransactor struct {
	db *sql.DB
}

// NewSQLTransactor wraps db.
func NewSQLTransactor(db *sql.DB) *SQLTransactor {
	return &SQLTransactor{db: db}
}

// RunInTx implements Transactor.
func (t *SQLTransactor) RunInTx(ctx context.Context, fn TxFn) error {
	return RunInTransaction(ctx, t.db, fn)
}
