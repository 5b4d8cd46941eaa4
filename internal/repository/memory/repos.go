package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
)

type ExperienceRepo struct {
	s  *Store
	tx *state
}

func (r *ExperienceRepo) List(_ context.Context) ([]domain.Experience, error) {
	out := []domain.Experience{}
	err := r.s.view(r.tx, func(st *state) error {
		for i := len(st.experienceOrder) - 1; i >= 0; i-- {
			out = append(out, copyExperience(st.experiences[st.experienceOrder[i]]))
		}
		return nil
	})
	return out, err
}

func (r *ExperienceRepo) Get(_ context.Context, id uuid.UUID) (*domain.Experience, error) {
	var out domain.Experience
	err := r.s.view(r.tx, func(st *state) error {
		e, ok := st.experiences[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = copyExperience(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ExperienceRepo) Create(_ context.Context, e *domain.Experience) error {
	return r.s.view(r.tx, func(st *state) error {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if _, dup := st.experiences[e.ID]; dup {
			return repository.ErrConflict
		}
		now := r.s.now()
		e.CreatedAt, e.UpdatedAt = now, now
		st.experiences[e.ID] = copyExperience(*e)
		st.experienceOrder = append(st.experienceOrder, e.ID)
		return nil
	})
}

func (r *ExperienceRepo) Update(_ context.Context, e *domain.Experience) error {
	return r.s.view(r.tx, func(st *state) error {
		prev, ok := st.experiences[e.ID]
		if !ok {
			return repository.ErrNotFound
		}
		for _, d := range e.AvailableDates {
			for _, s := range d.Slots {
				if s.Booked > s.Available {
					return repository.ErrCapacityExceeded
				}
			}
		}
		e.CreatedAt = prev.CreatedAt
		e.UpdatedAt = r.s.now()
		st.experiences[e.ID] = copyExperience(*e)
		return nil
	})
}

func (r *ExperienceRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.s.view(r.tx, func(st *state) error {
		if _, ok := st.experiences[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.experiences, id)
		st.experienceOrder = removeID(st.experienceOrder, id)
		return nil
	})
}

func (r *ExperienceRepo) IncrementBooked(_ context.Context, id uuid.UUID, date, t string, qty int) error {
	return r.s.view(r.tx, func(st *state) error {
		e, ok := st.experiences[id]
		if !ok {
			return repository.ErrCapacityExceeded
		}
		slot, err := e.LocateSlot(date, t)
		if err != nil || slot.Available-slot.Booked < qty {
			return repository.ErrCapacityExceeded
		}
		slot.Booked += qty
		st.experiences[id] = e
		return nil
	})
}

type PromoCodeRepo struct {
	s  *Store
	tx *state
}

func (r *PromoCodeRepo) List(_ context.Context) ([]domain.PromoCode, error) {
	out := []domain.PromoCode{}
	err := r.s.view(r.tx, func(st *state) error {
		for i := len(st.promoOrder) - 1; i >= 0; i-- {
			out = append(out, copyPromo(st.promos[st.promoOrder[i]]))
		}
		return nil
	})
	return out, err
}

func (r *PromoCodeRepo) Get(_ context.Context, id uuid.UUID) (*domain.PromoCode, error) {
	var out domain.PromoCode
	err := r.s.view(r.tx, func(st *state) error {
		p, ok := st.promos[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = copyPromo(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PromoCodeRepo) GetByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	var out domain.PromoCode
	err := r.s.view(r.tx, func(st *state) error {
		for _, p := range st.promos {
			if p.Code == code {
				out = copyPromo(p)
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PromoCodeRepo) Create(_ context.Context, p *domain.PromoCode) error {
	return r.s.view(r.tx, func(st *state) error {
		for _, other := range st.promos {
			if other.Code == p.Code {
				return repository.ErrConflict
			}
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.CreatedAt = r.s.now()
		st.promos[p.ID] = copyPromo(*p)
		st.promoOrder = append(st.promoOrder, p.ID)
		return nil
	})
}

func (r *PromoCodeRepo) Update(_ context.Context, p *domain.PromoCode) error {
	return r.s.view(r.tx, func(st *state) error {
		prev, ok := st.promos[p.ID]
		if !ok {
			return repository.ErrNotFound
		}
		for id, other := range st.promos {
			if id != p.ID && other.Code == p.Code {
				return repository.ErrConflict
			}
		}
		p.CreatedAt = prev.CreatedAt
		st.promos[p.ID] = copyPromo(*p)
		return nil
	})
}

func (r *PromoCodeRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.s.view(r.tx, func(st *state) error {
		if _, ok := st.promos[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.promos, id)
		st.promoOrder = removeID(st.promoOrder, id)
		return nil
	})
}

func (r *PromoCodeRepo) ConsumeUsage(_ context.Context, code string, now time.Time) error {
	return r.s.view(r.tx, func(st *state) error {
		for id, p := range st.promos {
			if p.Code != code {
				continue
			}
			if !p.IsActive || p.Expired(now) || p.Exhausted() {
				return repository.ErrPromoUnavailable
			}
			p.UsageCount++
			st.promos[id] = p
			return nil
		}
		return repository.ErrPromoUnavailable
	})
}

func (r *PromoCodeRepo) DeactivateExpired(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.s.view(r.tx, func(st *state) error {
		for id, p := range st.promos {
			if p.IsActive && p.ExpiryDate.Before(cutoff) {
				p.IsActive = false
				st.promos[id] = p
				n++
			}
		}
		return nil
	})
	return n, err
}

type BookingRepo struct {
	s  *Store
	tx *state
}

func (r *BookingRepo) Create(_ context.Context, b *domain.Booking) error {
	return r.s.view(r.tx, func(st *state) error {
		for _, other := range st.bookings {
			if other.RefID == b.RefID {
				return repository.ErrConflict
			}
		}
		st.bookings = append(st.bookings, *b)
		return nil
	})
}

func (r *BookingRepo) GetByRef(_ context.Context, refID string) (*domain.Booking, error) {
	var out domain.Booking
	err := r.s.view(r.tx, func(st *state) error {
		for _, b := range st.bookings {
			if b.RefID == refID {
				out = b
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BookingRepo) List(_ context.Context, limit, offset int) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.s.view(r.tx, func(st *state) error {
		for i := len(st.bookings) - 1 - offset; i >= 0 && len(out) < limit; i-- {
			out = append(out, st.bookings[i])
		}
		return nil
	})
	return out, err
}

var (
	_ repository.ExperienceRepository = (*ExperienceRepo)(nil)
	_ repository.PromoCodeRepository  = (*PromoCodeRepo)(nil)
	_ repository.BookingRepository    = (*BookingRepo)(nil)
)
