package admin

import (
	"time"

	"github.com/kirinyoku/tripslot/internal/domain"
)

type SlotInput struct {
	Time      string
	Available int
	// Booked is nil when the caller left the counter out.
	Booked *int
}

type DateInput struct {
	Date  string
	Slots []SlotInput
}

type ExperienceInput struct {
	Title        string
	Description  string
	Location     string
	ImageURL     string
	Price        int
	About        string
	IncludesText string
	Schedule     []DateInput
}

// ExperiencePatch carries the fields of a partial update. Nil fields are
// left as they are. A non-nil Schedule replaces all available dates.
type ExperiencePatch struct {
	Title        *string
	Description  *string
	Location     *string
	ImageURL     *string
	Price        *int
	About        *string
	IncludesText *string
	Schedule     *[]DateInput
}

type PromoInput struct {
	Code              string
	DiscountType      domain.DiscountType
	DiscountValue     int
	MaxDiscount       *int
	MinPurchaseAmount int
	ExpiryDate        time.Time
	UsageLimit        *int
	IsActive          *bool
}

type PromoPatch struct {
	Code              *string
	DiscountType      *domain.DiscountType
	DiscountValue     *int
	MaxDiscount       *int
	MinPurchaseAmount *int
	ExpiryDate        *time.Time
	UsageLimit        *int
	IsActive          *bool
}

// schedule converts dates and reports which slots carried an explicit
// booked counter.
func schedule(in []DateInput) ([]domain.AvailableDate, map[string]bool) {
	out := make([]domain.AvailableDate, 0, len(in))
	explicit := make(map[string]bool)

	for _, d := range in {
		slots := make([]domain.Slot, 0, len(d.Slots))
		for _, s := range d.Slots {
			slot := domain.Slot{Time: s.Time, Available: s.Available}
			if s.Booked != nil {
				slot.Booked = *s.Booked
				explicit[domain.SlotKey(d.Date, s.Time)] = true
			}
			slots = append(slots, slot)
		}
		out = append(out, domain.AvailableDate{Date: d.Date, Slots: slots})
	}

	return out, explicit
}

// unbooked rejects a new schedule that claims places are already taken.
func unbooked(dates []domain.AvailableDate) error {
	for _, d := range dates {
		for _, s := range d.Slots {
			if s.Booked != 0 {
				return &domain.ValidationError{
					Field:  "availableDates.slots.booked",
					Reason: "must be 0 for a new experience",
				}
			}
		}
	}
	return nil
}
