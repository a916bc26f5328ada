package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transactor runs engine work inside a single database transaction, rolling
// back when the work returns an error. The transaction handle travels in the
// context so storage calls made by the same attempt share it.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor creates a Transactor over the pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	if pool == nil {
		panic("pg: pool cannot be nil")
	}
	return &Transactor{pool: pool}
}

// RunInTransaction implements the engine's transaction collaborator contract.
func (t *Transactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return pgx.BeginFunc(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(withTx(ctx, tx))
	})
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction opened by RunInTransaction, if any.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}
