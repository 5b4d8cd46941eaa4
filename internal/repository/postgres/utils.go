package postgresrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// wrapDBErr maps common DB errors to repository-level errors and wraps them with
// the provided operation name. Retryable errors keep their pg error in the chain.
func wrapDBErr(op string, err error) error {
	if err == nil {
		return nil
	}

	translated := translateDBErr(err)
	if translated != err {
		return fmt.Errorf("%s:%w", op, translated)
	}

	return fmt.Errorf("%s:%w", op, err)
}

// inTx runs fn on db when the repository is already bound to a transaction,
// otherwise in a fresh read committed transaction on pool.
func inTx(ctx context.Context, pool *pgxpool.Pool, db DB, fn func(db DB) error) error {
	if db != nil {
		return fn(db)
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
