package db

import (
	"context"
	"database/sql"
)

type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type TxManager interface {
	// RunInTx executes fn within a database transaction.
	// The transaction is stored in the context passed to fn, so repositories
	// that resolve their executor with ExecutorFromContext join it.
	// It commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExecutorFromContext returns the transaction stored in ctx, or fallback when there is none.
func ExecutorFromContext(ctx context.Context, fallback Executor) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return fallback
}
