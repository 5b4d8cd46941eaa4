package bookings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
	"github.com/skip2/go-qrcode"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200

	DefaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

type Service struct {
	bookings repository.BookingRepository
}

func New(bookings repository.BookingRepository) *Service {
	return &Service{bookings: bookings}
}

// GetByRef looks a booking up by the reference shown to the customer.
//
// Returns:
//   - error: bookings.ErrBookingNotFound if no booking has the reference.
func (s *Service) GetByRef(ctx context.Context, refID string) (*domain.Booking, error) {
	const op = "service.bookings.GetByRef"

	b, err := s.bookings.GetByRef(ctx, strings.ToUpper(strings.TrimSpace(refID)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

// List returns bookings newest first. limit is clamped to MaxPageSize.
func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	const op = "service.bookings.List"

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	list, err := s.bookings.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// QRCode renders the booking reference as a PNG square of size pixels.
//
// Returns:
//   - error: bookings.ErrBookingNotFound if no booking has the reference.
func (s *Service) QRCode(ctx context.Context, refID string, size int) ([]byte, error) {
	const op = "service.bookings.QRCode"

	b, err := s.GetByRef(ctx, refID)
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(b.RefID, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(clampQRSize(size))); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func clampQRSize(size int) int {
	switch {
	case size <= 0:
		return DefaultQRSize
	case size < minQRSize:
		return minQRSize
	case size > maxQRSize:
		return maxQRSize
	}
	return size
}
