package uow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kirinyoku/tripslot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errSerialization = errors.New("could not serialize access")
	errPermanent     = errors.New("constraint violated")
)

func isSerialization(err error) bool { return errors.Is(err, errSerialization) }

// scriptedRunner fails the first len(failures) transactions with the listed
// errors and commits afterwards.
type scriptedRunner struct {
	failures []error
	calls    int
}

func (r *scriptedRunner) RunTx(
	ctx context.Context,
	fn func(ctx context.Context, repos repository.Repositories) error,
) error {
	r.calls++
	if err := fn(ctx, repository.Repositories{}); err != nil {
		return err
	}
	if r.calls <= len(r.failures) {
		return fmt.Errorf("commit: %w", r.failures[r.calls-1])
	}
	return nil
}

func TestDoRetriesRetryableErrors(t *testing.T) {
	runner := &scriptedRunner{failures: []error{errSerialization, errSerialization}}
	u := NewUoW(runner, WithRetry(3, isSerialization))

	var hooks []int
	attempt := 0

	err := u.Do(context.Background(), func(ctx context.Context, _ repository.Repositories, after func(AfterCommit)) error {
		attempt++
		n := attempt
		after(func(context.Context) { hooks = append(hooks, n) })
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, runner.calls)
	assert.Equal(t, []int{3}, hooks, "only the committed attempt's hooks run, once")
}

func TestDoGivesUpAfterAttempts(t *testing.T) {
	runner := &scriptedRunner{failures: []error{errSerialization, errSerialization, errSerialization, errSerialization}}
	u := NewUoW(runner, WithRetry(3, isSerialization))

	ran := false
	err := u.Do(context.Background(), func(ctx context.Context, _ repository.Repositories, after func(AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return nil
	})

	assert.ErrorIs(t, err, errSerialization)
	assert.Equal(t, 3, runner.calls)
	assert.False(t, ran)
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	runner := &scriptedRunner{failures: []error{errPermanent}}
	u := NewUoW(runner, WithRetry(3, isSerialization))

	err := u.Do(context.Background(), func(context.Context, repository.Repositories, func(AfterCommit)) error {
		return nil
	})

	assert.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 1, runner.calls)
}

func TestDoReturnsWorkErrorWithoutHooks(t *testing.T) {
	runner := &scriptedRunner{}
	u := NewUoW(runner, WithRetry(3, isSerialization))

	ran := false
	err := u.Do(context.Background(), func(ctx context.Context, _ repository.Repositories, after func(AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return errPermanent
	})

	assert.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 1, runner.calls)
	assert.False(t, ran)
}

func TestDoStopsRetryingWhenContextDone(t *testing.T) {
	runner := &scriptedRunner{failures: []error{errSerialization, errSerialization}}
	u := NewUoW(runner, WithRetry(3, isSerialization))

	ctx, cancel := context.WithCancel(context.Background())

	err := u.Do(ctx, func(context.Context, repository.Repositories, func(AfterCommit)) error {
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, errSerialization)
	assert.Equal(t, 1, runner.calls)
}

func TestDoWithoutRetryRunsOnce(t *testing.T) {
	runner := &scriptedRunner{failures: []error{errSerialization}}
	u := NewUoW(runner)

	err := u.Do(context.Background(), func(context.Context, repository.Repositories, func(AfterCommit)) error {
		return nil
	})

	assert.ErrorIs(t, err, errSerialization)
	assert.Equal(t, 1, runner.calls)
}
