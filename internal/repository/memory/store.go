// Package memory is an in-process implementation of the repositories. A
// transaction works on a copy of the data that replaces the original only
// when the function returns without error.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
)

type state struct {
	experiences     map[uuid.UUID]domain.Experience
	experienceOrder []uuid.UUID
	promos          map[uuid.UUID]domain.PromoCode
	promoOrder      []uuid.UUID
	bookings        []domain.Booking
}

func newState() *state {
	return &state{
		experiences: make(map[uuid.UUID]domain.Experience),
		promos:      make(map[uuid.UUID]domain.PromoCode),
	}
}

func (st *state) clone() *state {
	cp := &state{
		experiences:     make(map[uuid.UUID]domain.Experience, len(st.experiences)),
		experienceOrder: slices.Clone(st.experienceOrder),
		promos:          make(map[uuid.UUID]domain.PromoCode, len(st.promos)),
		promoOrder:      slices.Clone(st.promoOrder),
		bookings:        slices.Clone(st.bookings),
	}
	for id, e := range st.experiences {
		cp.experiences[id] = copyExperience(e)
	}
	for id, p := range st.promos {
		cp.promos[id] = copyPromo(p)
	}
	return cp
}

type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{state: newState(), now: time.Now}
}

// RunTx runs fn against a private copy of the data and publishes the copy
// on success. Transactions are serialized.
func (s *Store) RunTx(
	ctx context.Context,
	fn func(ctx context.Context, repos repository.Repositories) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(ctx, s.bind(tx)); err != nil {
		return err
	}

	s.state = tx
	return nil
}

// Repositories returns repositories that each lock the store per call.
func (s *Store) Repositories() repository.Repositories {
	return s.bind(nil)
}

func (s *Store) bind(tx *state) repository.Repositories {
	return repository.Repositories{
		Experiences: &ExperienceRepo{s: s, tx: tx},
		PromoCodes:  &PromoCodeRepo{s: s, tx: tx},
		Bookings:    &BookingRepo{s: s, tx: tx},
	}
}

func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.state)
}

func copyExperience(e domain.Experience) domain.Experience {
	dates := make([]domain.AvailableDate, len(e.AvailableDates))
	for i, d := range e.AvailableDates {
		dates[i] = domain.AvailableDate{Date: d.Date, Slots: slices.Clone(d.Slots)}
		if dates[i].Slots == nil {
			dates[i].Slots = []domain.Slot{}
		}
	}
	e.AvailableDates = dates
	return e
}

func copyPromo(p domain.PromoCode) domain.PromoCode {
	if p.MaxDiscount != nil {
		v := *p.MaxDiscount
		p.MaxDiscount = &v
	}
	if p.UsageLimit != nil {
		v := *p.UsageLimit
		p.UsageLimit = &v
	}
	return p
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(ids, func(v uuid.UUID) bool { return v == id })
}
