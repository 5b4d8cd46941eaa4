package bookings

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, n int) *Service {
	t.Helper()

	repo := memory.NewStore().Repositories().Bookings
	for i := range n {
		b := domain.Booking{
			ID:        uuid.New(),
			FullName:  "Guest",
			Email:     "guest@example.com",
			Quantity:  1,
			RefID:     fmt.Sprintf("HUF%08d", i),
			Status:    domain.BookingConfirmed,
			CreatedAt: time.Date(2025, 1, 1, 0, i, 0, 0, time.UTC),
		}
		require.NoError(t, repo.Create(context.Background(), &b))
	}

	return New(repo)
}

func TestGetByRef(t *testing.T) {
	svc := newService(t, 3)

	b, err := svc.GetByRef(context.Background(), " huf00000001 ")
	require.NoError(t, err)
	assert.Equal(t, "HUF00000001", b.RefID)

	_, err = svc.GetByRef(context.Background(), "HUFNOPE0000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListPages(t *testing.T) {
	svc := newService(t, 5)
	ctx := context.Background()

	page, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "HUF00000004", page[0].RefID)
	assert.Equal(t, "HUF00000003", page[1].RefID)

	page, err = svc.List(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "HUF00000000", page[0].RefID)

	page, err = svc.List(ctx, 0, -3)
	require.NoError(t, err)
	assert.Len(t, page, 5)
}

func TestQRCode(t *testing.T) {
	svc := newService(t, 1)

	raw, err := svc.QRCode(context.Background(), "HUF00000000", 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	_, err = svc.QRCode(context.Background(), "HUFMISSING0", 128)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestClampQRSize(t *testing.T) {
	assert.Equal(t, DefaultQRSize, clampQRSize(0))
	assert.Equal(t, 64, clampQRSize(10))
	assert.Equal(t, 1024, clampQRSize(5000))
	assert.Equal(t, 300, clampQRSize(300))
}
