package uow

import (
	"context"

	"github.com/kirinyoku/tripslot/internal/repository"
)

// AfterCommit is a function that runs after a successful transaction commit.
type AfterCommit func(ctx context.Context)

// Work is the body of a unit of work. Hooks registered through after run only
// once the transaction has committed.
type Work func(ctx context.Context, repos repository.Repositories, after func(AfterCommit)) error

// TxRunner runs fn inside one transaction with repositories bound to it.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error
}

type Option func(*UoW)

// WithRetry re-runs the whole transaction up to attempts times while
// retryable reports true for the returned error.
func WithRetry(attempts int, retryable func(error) bool) Option {
	return func(u *UoW) {
		if attempts > 0 {
			u.attempts = attempts
		}
		u.retryable = retryable
	}
}

// UoW represents a unit of work.
type UoW struct {
	runner    TxRunner
	attempts  int
	retryable func(error) bool
}

func NewUoW(runner TxRunner, opts ...Option) *UoW {
	u := &UoW{runner: runner, attempts: 1}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Do runs fn inside the transaction. After a successful commit,
// it executes all after-commit hooks of the attempt that committed.
func (u *UoW) Do(ctx context.Context, fn Work) error {
	var (
		hooks []AfterCommit
		err   error
	)

	for attempt := 1; attempt <= u.attempts; attempt++ {
		hooks = hooks[:0]

		err = u.runner.RunTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			return fn(ctx, repos, func(h AfterCommit) {
				hooks = append(hooks, h)
			})
		})
		if err == nil || u.retryable == nil || !u.retryable(err) || ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
