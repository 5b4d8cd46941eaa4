package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/domain"
)

// ExperienceRepository persists experiences together with their schedule.
type ExperienceRepository interface {
	List(ctx context.Context) ([]domain.Experience, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Experience, error)
	Create(ctx context.Context, e *domain.Experience) error
	Update(ctx context.Context, e *domain.Experience) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementBooked adds qty to the booked counter of one slot only if the
	// slot still has qty places left. It returns ErrCapacityExceeded otherwise.
	IncrementBooked(ctx context.Context, id uuid.UUID, date, t string, qty int) error
}

type PromoCodeRepository interface {
	List(ctx context.Context) ([]domain.PromoCode, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.PromoCode, error)
	// GetByCode finds a code by its normalized form whether or not it is active.
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	Create(ctx context.Context, p *domain.PromoCode) error
	Update(ctx context.Context, p *domain.PromoCode) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ConsumeUsage increments the usage counter of an active, unexpired code
	// that has not reached its limit. It returns ErrPromoUnavailable otherwise.
	ConsumeUsage(ctx context.Context, code string, now time.Time) error

	// DeactivateExpired switches off active codes that expired before cutoff.
	DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type BookingRepository interface {
	// Create inserts b. A reference id collision returns ErrConflict.
	Create(ctx context.Context, b *domain.Booking) error
	GetByRef(ctx context.Context, refID string) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
}

// Repositories is the set of stores visible inside one unit of work.
type Repositories struct {
	Experiences ExperienceRepository
	PromoCodes  PromoCodeRepository
	Bookings    BookingRepository
}
