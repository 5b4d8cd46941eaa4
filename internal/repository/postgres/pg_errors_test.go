package postgresrepo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/tripslot/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestWrapDBErr(t *testing.T) {
	other := errors.New("boom")

	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: repository.ErrNotFound},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: repository.ErrConflict},
		{
			name: "slot capacity",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "experience_slots_capacity"},
			want: repository.ErrCapacityExceeded,
		},
		{name: "passthrough", err: other, want: other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := wrapDBErr("op", tc.err)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "op:")
		})
	}

	assert.NoError(t, wrapDBErr("op", nil))

	other23514 := wrapDBErr("op", &pgconn.PgError{Code: "23514", ConstraintName: "something_else"})
	assert.NotErrorIs(t, other23514, repository.ErrCapacityExceeded)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("x")))
}
