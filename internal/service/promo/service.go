package promo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("tripslot/service/promo")

// Discount describes what a valid code is worth for a given amount.
type Discount struct {
	Valid          bool                `json:"valid"`
	Code           string              `json:"code"`
	DiscountType   domain.DiscountType `json:"discountType"`
	DiscountValue  int                 `json:"discountValue"`
	DiscountAmount int                 `json:"discountAmount"`
	ExpiryDate     time.Time           `json:"expiryDate"`
}

type Service struct {
	promos repository.PromoCodeRepository
	now    func() time.Time
}

func New(promos repository.PromoCodeRepository) *Service {
	return &Service{promos: promos, now: time.Now}
}

// Validate checks that code can be applied to totalAmount and computes the
// discount. It only reads: the usage counter is consumed when a booking is
// made with the code.
//
// Parameters:
//   - ctx: request-scoped context.
//   - code: promo code as typed by the customer, any case.
//   - totalAmount: amount the discount applies to.
//
// Returns:
//   - *Discount: the discount descriptor.
//   - error: promo.ErrExpired if the code is past its expiry date, even when
//     it has since been switched off.
//   - error: promo.ErrInvalidCode if the code is unknown or inactive.
//   - error: promo.ErrUsageLimitExceeded if the code has no uses left.
//   - error: promo.BelowMinimumError if totalAmount is under the minimum.
func (s *Service) Validate(ctx context.Context, code string, totalAmount int) (*Discount, error) {
	const op = "service.promo.Validate"

	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	code = domain.NormalizeCode(code)
	span.SetAttributes(attribute.String("promo.code", code))

	if code == "" {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCode)
	}

	if totalAmount < 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidAmount)
	}

	p, err := s.promos.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrInvalidCode)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if p.Expired(s.now()) {
		return nil, fmt.Errorf("%s:%w", op, ErrExpired)
	}

	if !p.IsActive {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCode)
	}

	if p.Exhausted() {
		return nil, fmt.Errorf("%s:%w", op, ErrUsageLimitExceeded)
	}

	if totalAmount < p.MinPurchaseAmount {
		return nil, fmt.Errorf("%s:%w", op, BelowMinimumError{Min: p.MinPurchaseAmount})
	}

	return &Discount{
		Valid:          true,
		Code:           p.Code,
		DiscountType:   p.DiscountType,
		DiscountValue:  p.DiscountValue,
		DiscountAmount: p.DiscountFor(totalAmount),
		ExpiryDate:     p.ExpiryDate,
	}, nil
}
