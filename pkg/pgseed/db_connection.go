package pgseed

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBConnection abstracts the database operations needed by the SQL file
// executor. It keeps pgx pool types out of the service layer so the executor
// can be tested against fakes.
type DBConnection interface {
	// Exec executes SQL without returning rows. Without arguments the text is
	// sent over the simple protocol and may hold several statements.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Begin starts a transaction.
	Begin(ctx context.Context) (Tx, error)
}

// Row represents a single row returned by QueryRow.
type Row interface {
	Scan(dest ...any) error
}

// Tx is an open transaction. Rollback after Commit is a no-op.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
