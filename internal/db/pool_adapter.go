package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// PoolAdapter exposes a *pgxpool.Pool as pgseed.DBConnection.
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (p *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgseed.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Begin starts a transaction on a pooled connection. The connection returns
// to the pool on Commit or Rollback.
func (p *PoolAdapter) Begin(ctx context.Context) (pgseed.Tx, error) {
	return p.pool.Begin(ctx)
}

var _ pgseed.DBConnection = (*PoolAdapter)(nil)
