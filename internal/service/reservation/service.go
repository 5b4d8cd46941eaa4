package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/notify"
	"github.com/kirinyoku/tripslot/internal/repository"
	"github.com/kirinyoku/tripslot/internal/service/changes"
	"github.com/kirinyoku/tripslot/internal/uow"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// refIDAttempts bounds how often a colliding reference id is regenerated.
const refIDAttempts = 5

var tracer = otel.Tracer("tripslot/service/reservation")

type Service struct {
	uow      *uow.UoW
	changes  *changes.Announcer
	notifier *notify.Dispatcher
	validate *validator.Validate
	now      func() time.Time
	newRefID func() (string, error)
	log      *slog.Logger
}

func New(
	u *uow.UoW,
	announcer *changes.Announcer,
	notifier *notify.Dispatcher,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		uow:      u,
		changes:  announcer,
		notifier: notifier,
		validate: validator.New(),
		now:      time.Now,
		newRefID: domain.NewRefID,
		log:      log,
	}
}

// Book reserves req.Quantity places in one slot and records the booking.
// The slot counter, the promo code usage and the booking row are written in
// one transaction: either all of them change or none does.
//
// Parameters:
//   - ctx: request-scoped context.
//   - req: checkout data. Money figures are taken as submitted.
//
// Returns:
//   - *domain.Booking: the persisted booking.
//   - error: reservation.ErrValidation if the request is malformed.
//   - error: reservation.ErrExperienceNotFound if the experience does not exist.
//   - error: reservation.ErrDateUnavailable if the date is not offered.
//   - error: reservation.ErrSlotUnavailable if the time is not offered.
//   - error: reservation.ErrCapacityExceeded if the slot has too few places.
//   - error: reservation.ErrPromoUnavailable if the promo code cannot be used.
func (s *Service) Book(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	const op = "service.reservation.Book"

	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	span.SetAttributes(
		attribute.String("experience.id", req.ExperienceID.String()),
		attribute.String("slot.date", req.Date),
		attribute.String("slot.time", req.Time),
		attribute.Int("booking.quantity", req.Quantity),
	)

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.check(req); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var booking domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		repos repository.Repositories,
		after func(uow.AfterCommit),
	) error {
		exp, err := repos.Experiences.Get(ctx, req.ExperienceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrExperienceNotFound
			}
			return err
		}

		if _, err := exp.Reserve(req.Date, req.Time, req.Quantity); err != nil {
			return mapReserveErr(err)
		}

		err = repos.Experiences.IncrementBooked(ctx, exp.ID, req.Date, req.Time, req.Quantity)
		if err != nil {
			if errors.Is(err, repository.ErrCapacityExceeded) {
				return ErrCapacityExceeded
			}
			return err
		}

		now := s.now()

		if code := domain.NormalizeCode(req.PromoCode); code != "" {
			if err := repos.PromoCodes.ConsumeUsage(ctx, code, now); err != nil {
				if errors.Is(err, repository.ErrPromoUnavailable) {
					return ErrPromoUnavailable
				}
				return err
			}
		}

		booking, err = s.insertBooking(ctx, repos.Bookings, exp, req, now)
		if err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.changes.ExperienceChanged(ctx, exp.ID)
			s.notifier.Go(ctx, booking)
		})

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	span.SetAttributes(attribute.String("booking.ref_id", booking.RefID))

	s.log.Info("booking confirmed",
		slog.String("ref_id", booking.RefID),
		slog.String("experience_id", booking.ExperienceID.String()),
		slog.Int("quantity", booking.Quantity),
	)

	return &booking, nil
}

func (s *Service) insertBooking(
	ctx context.Context,
	bookings repository.BookingRepository,
	exp *domain.Experience,
	req domain.BookingRequest,
	now time.Time,
) (domain.Booking, error) {
	for range refIDAttempts {
		ref, err := s.newRefID()
		if err != nil {
			return domain.Booking{}, err
		}

		b := domain.NewBooking(exp, req, ref, now)
		err = bookings.Create(ctx, &b)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return domain.Booking{}, err
		}
	}

	return domain.Booking{}, ErrRefIDExhausted
}

func (s *Service) check(req domain.BookingRequest) error {
	if req.Quantity < 1 {
		return fmt.Errorf("%w: %w", ErrValidation, domain.ErrInvalidQuantity)
	}

	if req.FullName == "" {
		return fmt.Errorf("%w: %w", ErrValidation,
			&domain.ValidationError{Field: "fullName", Reason: "is required"})
	}

	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation,
			&domain.ValidationError{Field: "email", Reason: "must be a valid email address"})
	}

	if req.Date == "" || req.Time == "" {
		return fmt.Errorf("%w: %w", ErrValidation,
			&domain.ValidationError{Field: "date", Reason: "date and time are required"})
	}

	return nil
}

func mapReserveErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrDateNotFound):
		return ErrDateUnavailable
	case errors.Is(err, domain.ErrSlotNotFound):
		return ErrSlotUnavailable
	case errors.Is(err, domain.ErrNotEnoughCapacity):
		return ErrCapacityExceeded
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	default:
		return err
	}
}
