package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
	"github.com/kirinyoku/tripslot/internal/service/changes"
	"github.com/kirinyoku/tripslot/internal/uow"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("tripslot/service/admin")

var patchOpts = copier.Option{IgnoreEmpty: true}

type Service struct {
	repos   repository.Repositories
	uow     *uow.UoW
	changes *changes.Announcer
	log     *slog.Logger
}

func New(
	repos repository.Repositories,
	u *uow.UoW,
	announcer *changes.Announcer,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		repos:   repos,
		uow:     u,
		changes: announcer,
		log:     log,
	}
}

// CreateExperience stores a new experience with its schedule. Slots start
// with nothing booked.
//
// Returns:
//   - *domain.Experience: the stored experience with its ID.
//   - error: admin.ErrValidation wrapping a *domain.ValidationError.
func (s *Service) CreateExperience(ctx context.Context, in ExperienceInput) (*domain.Experience, error) {
	const op = "service.admin.CreateExperience"

	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	var e domain.Experience
	if err := copier.Copy(&e, &in); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	e.AvailableDates, _ = schedule(in.Schedule)

	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w: %w", op, ErrValidation, err)
	}
	if err := unbooked(e.AvailableDates); err != nil {
		return nil, fmt.Errorf("%s:%w: %w", op, ErrValidation, err)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories, after func(uow.AfterCommit)) error {
		if err := repos.Experiences.Create(ctx, &e); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.changes.ExperienceChanged(ctx, e.ID)
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.Info("experience created", slog.String("experience_id", e.ID.String()))

	return &e, nil
}

// UpdateExperience applies a partial update. When the schedule is replaced,
// slots that keep their date and time keep their booked counter unless the
// patch sets one.
//
// Returns:
//   - *domain.Experience: the experience after the update.
//   - error: admin.ErrExperienceNotFound if the experience does not exist.
//   - error: admin.ErrValidation if the result breaks a domain rule,
//     including capacity dropping below what is already booked.
func (s *Service) UpdateExperience(
	ctx context.Context,
	id uuid.UUID,
	patch ExperiencePatch,
) (*domain.Experience, error) {
	const op = "service.admin.UpdateExperience"

	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	var updated domain.Experience

	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories, after func(uow.AfterCommit)) error {
		prev, err := repos.Experiences.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrExperienceNotFound
			}
			return err
		}

		next := *prev
		if err := copier.CopyWithOption(&next, &patch, patchOpts); err != nil {
			return err
		}

		if patch.Schedule != nil {
			var explicit map[string]bool
			next.AvailableDates, explicit = schedule(*patch.Schedule)
			next.CarryBookedFrom(prev, explicit)
		}

		next.ID = id
		next.Normalize()
		if err := next.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}

		if err := repos.Experiences.Update(ctx, &next); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return ErrExperienceNotFound
			case errors.Is(err, repository.ErrCapacityExceeded):
				return fmt.Errorf("%w: %w", ErrValidation, &domain.ValidationError{
					Field:  "availableDates.slots.available",
					Reason: "is below the number of places already booked",
				})
			}
			return err
		}

		updated = next

		after(func(ctx context.Context) {
			s.changes.ExperienceChanged(ctx, id)
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &updated, nil
}

// DeleteExperience removes an experience. Its bookings are kept.
//
// Returns:
//   - error: admin.ErrExperienceNotFound if the experience does not exist.
func (s *Service) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	const op = "service.admin.DeleteExperience"

	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories, after func(uow.AfterCommit)) error {
		if err := repos.Experiences.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrExperienceNotFound
			}
			return err
		}

		after(func(ctx context.Context) {
			s.changes.ExperienceChanged(ctx, id)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.log.Info("experience deleted", slog.String("experience_id", id.String()))

	return nil
}

func (s *Service) ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error) {
	const op = "service.admin.ListPromoCodes"

	list, err := s.repos.PromoCodes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return list, nil
}

func (s *Service) GetPromoCode(ctx context.Context, id uuid.UUID) (*domain.PromoCode, error) {
	const op = "service.admin.GetPromoCode"

	p, err := s.repos.PromoCodes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrPromoNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return p, nil
}

// CreatePromoCode stores a new code in upper case. Codes are unique
// regardless of the case they were typed in.
//
// Returns:
//   - *domain.PromoCode: the stored promo code.
//   - error: admin.ErrPromoConflict if the code already exists.
//   - error: admin.ErrValidation wrapping a *domain.ValidationError.
func (s *Service) CreatePromoCode(ctx context.Context, in PromoInput) (*domain.PromoCode, error) {
	const op = "service.admin.CreatePromoCode"

	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	p := domain.PromoCode{IsActive: true}
	if err := copier.CopyWithOption(&p, &in, patchOpts); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	p.UsageCount = 0

	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w: %w", op, ErrValidation, err)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories, after func(uow.AfterCommit)) error {
		if err := repos.PromoCodes.Create(ctx, &p); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrPromoConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.Info("promo code created", slog.String("code", p.Code))

	return &p, nil
}

// UpdatePromoCode applies a partial update.
//
// Returns:
//   - *domain.PromoCode: the promo code after the update.
//   - error: admin.ErrPromoNotFound if the promo code does not exist.
//   - error: admin.ErrPromoConflict if the new code belongs to another promo.
//   - error: admin.ErrValidation wrapping a *domain.ValidationError.
func (s *Service) UpdatePromoCode(ctx context.Context, id uuid.UUID, patch PromoPatch) (*domain.PromoCode, error) {
	const op = "service.admin.UpdatePromoCode"

	var updated domain.PromoCode

	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories, after func(uow.AfterCommit)) error {
		prev, err := repos.PromoCodes.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPromoNotFound
			}
			return err
		}

		next := *prev
		if err := copier.CopyWithOption(&next, &patch, patchOpts); err != nil {
			return err
		}

		next.ID = id
		next.Normalize()
		if err := next.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}

		if err := repos.PromoCodes.Update(ctx, &next); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return ErrPromoNotFound
			case errors.Is(err, repository.ErrConflict):
				return ErrPromoConflict
			}
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &updated, nil
}

func (s *Service) DeletePromoCode(ctx context.Context, id uuid.UUID) error {
	const op = "service.admin.DeletePromoCode"

	err := s.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories, after func(uow.AfterCommit)) error {
		if err := repos.PromoCodes.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPromoNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
