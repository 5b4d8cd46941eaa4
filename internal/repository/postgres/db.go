package postgresrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tripslot/internal/repository"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
	}
}

func (s *Store) RunTx(
	ctx context.Context,
	opts *pgx.TxOptions,
	fn func(ctx context.Context, tx DB) error,
) error {
	txOpts := pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	}

	if opts != nil {
		txOpts.IsoLevel = opts.IsoLevel
		txOpts.AccessMode = opts.AccessMode
		txOpts.DeferrableMode = opts.DeferrableMode
	}

	tx, err := s.pool.BeginTx(ctx, txOpts)
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *Store) Experiences() *ExperienceRepo { return &ExperienceRepo{pool: s.pool} }
func (s *Store) PromoCodes() *PromoCodeRepo   { return &PromoCodeRepo{pool: s.pool} }
func (s *Store) Bookings() *BookingRepo       { return &BookingRepo{pool: s.pool} }

// Repositories returns the stores bound to db, typically a transaction. A nil
// db binds them to the pool.
func (s *Store) Repositories(db DB) repository.Repositories {
	return repository.Repositories{
		Experiences: s.Experiences().With(db),
		PromoCodes:  s.PromoCodes().With(db),
		Bookings:    s.Bookings().With(db),
	}
}

var (
	_ repository.ExperienceRepository = (*ExperienceRepo)(nil)
	_ repository.PromoCodeRepository  = (*PromoCodeRepo)(nil)
	_ repository.BookingRepository    = (*BookingRepo)(nil)
)

// Runner runs work in serializable transactions with repositories bound to
// the transaction.
type Runner struct {
	store *Store
}

func (s *Store) Runner() *Runner { return &Runner{store: s} }

func (r *Runner) RunTx(
	ctx context.Context,
	fn func(ctx context.Context, repos repository.Repositories) error,
) error {
	return r.store.RunTx(ctx, nil, func(ctx context.Context, tx DB) error {
		return fn(ctx, r.store.Repositories(tx))
	})
}
