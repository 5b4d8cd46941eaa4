//go:build integration

package postgresrepo

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/postgres"
	"github.com/kirinyoku/tripslot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: TRIPSLOT_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/postgres/

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("TRIPSLOT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TRIPSLOT_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.New(ctx, postgres.Config{DSN: dsn, MaxConns: 8, AutoMigrate: true})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewStore(pool)
}

func seedExperience(t *testing.T, s *Store, available int) *domain.Experience {
	t.Helper()

	now := time.Now().UTC()
	exp := &domain.Experience{
		ID:           uuid.New(),
		Title:        "Kayak " + uuid.NewString()[:8],
		Description:  "Paddle the bay",
		Location:     "Udupi",
		ImageURL:     "https://example.com/kayak.jpg",
		Price:        999,
		IncludesText: domain.DefaultIncludesText,
		AvailableDates: []domain.AvailableDate{{
			Date:  "2030-05-01",
			Slots: []domain.Slot{{Time: "09:00", Available: available}},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, s.Experiences().Create(context.Background(), exp))
	t.Cleanup(func() {
		_ = s.Experiences().Delete(context.Background(), exp.ID)
	})

	return exp
}

func bookedAt(t *testing.T, s *Store, id uuid.UUID) int {
	t.Helper()

	got, err := s.Experiences().Get(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got.AvailableDates, 1)
	require.Len(t, got.AvailableDates[0].Slots, 1)
	return got.AvailableDates[0].Slots[0].Booked
}

func TestIncrementBookedStopsAtCapacity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	exp := seedExperience(t, s, 2)

	require.NoError(t, s.Experiences().IncrementBooked(ctx, exp.ID, "2030-05-01", "09:00", 2))

	err := s.Experiences().IncrementBooked(ctx, exp.ID, "2030-05-01", "09:00", 1)
	assert.ErrorIs(t, err, repository.ErrCapacityExceeded)
	assert.Equal(t, 2, bookedAt(t, s, exp.ID))

	err = s.Experiences().IncrementBooked(ctx, exp.ID, "2030-05-01", "10:00", 1)
	assert.ErrorIs(t, err, repository.ErrCapacityExceeded)
}

func TestIncrementBookedUnderContention(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	exp := seedExperience(t, s, 3)

	const workers = 12

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := s.Experiences().IncrementBooked(ctx, exp.ID, "2030-05-01", "09:00", 1)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, repository.ErrCapacityExceeded):
				full++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, workers-3, full)
	assert.Equal(t, 3, bookedAt(t, s, exp.ID))
}

func TestBookingCreateRejectsDuplicateRef(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	exp := seedExperience(t, s, 4)

	ref, err := domain.NewRefID()
	require.NoError(t, err)

	req := domain.BookingRequest{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Date:     "2030-05-01",
		Time:     "09:00",
		Quantity: 1,
		Subtotal: 999,
		Taxes:    59,
		Total:    1058,
	}

	first := domain.NewBooking(exp, req, ref, time.Now().UTC())
	require.NoError(t, s.Bookings().Create(ctx, &first))
	t.Cleanup(func() {
		_, _ = s.pool.Exec(context.Background(), `DELETE FROM bookings WHERE ref_id = $1`, ref)
	})

	second := domain.NewBooking(exp, req, ref, time.Now().UTC())
	err = s.Bookings().Create(ctx, &second)
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := s.Bookings().GetByRef(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestConsumeUsageRespectsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	limit := 1
	p := &domain.PromoCode{
		ID:            uuid.New(),
		Code:          "IT" + uuid.NewString()[:6],
		DiscountType:  domain.DiscountFlat,
		DiscountValue: 100,
		ExpiryDate:    now.Add(24 * time.Hour),
		UsageLimit:    &limit,
		IsActive:      true,
		CreatedAt:     now,
	}
	p.Code = domain.NormalizeCode(p.Code)
	require.NoError(t, s.PromoCodes().Create(ctx, p))
	t.Cleanup(func() {
		_ = s.PromoCodes().Delete(context.Background(), p.ID)
	})

	require.NoError(t, s.PromoCodes().ConsumeUsage(ctx, p.Code, now))
	err := s.PromoCodes().ConsumeUsage(ctx, p.Code, now)
	assert.ErrorIs(t, err, repository.ErrPromoUnavailable)
}
