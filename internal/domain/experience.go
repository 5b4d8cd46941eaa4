package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultIncludesText = "Safety first with gear included"
)

type Slot struct {
	Time      string `json:"time"`
	Available int    `json:"available"`
	Booked    int    `json:"booked"`
}

// Remaining is the number of places still free in the slot.
func (s Slot) Remaining() int {
	if s.Booked >= s.Available {
		return 0
	}
	return s.Available - s.Booked
}

type AvailableDate struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

func (d *AvailableDate) FindSlot(t string) (*Slot, bool) {
	for i := range d.Slots {
		if d.Slots[i].Time == t {
			return &d.Slots[i], true
		}
	}
	return nil, false
}

type Experience struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	ImageURL       string          `json:"imageUrl"`
	Price          int             `json:"price"`
	About          string          `json:"about"`
	IncludesText   string          `json:"includesText"`
	AvailableDates []AvailableDate `json:"availableDates"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (e *Experience) FindDate(date string) (*AvailableDate, bool) {
	for i := range e.AvailableDates {
		if e.AvailableDates[i].Date == date {
			return &e.AvailableDates[i], true
		}
	}
	return nil, false
}

// LocateSlot resolves date and time to a slot of the experience.
func (e *Experience) LocateSlot(date, t string) (*Slot, error) {
	d, ok := e.FindDate(date)
	if !ok {
		return nil, ErrDateNotFound
	}

	s, ok := d.FindSlot(t)
	if !ok {
		return nil, ErrSlotNotFound
	}

	return s, nil
}

// Reserve checks that qty places fit into the slot and books them.
// The experience is left untouched when an error is returned.
func (e *Experience) Reserve(date, t string, qty int) (*Slot, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	s, err := e.LocateSlot(date, t)
	if err != nil {
		return nil, err
	}

	if s.Available-s.Booked < qty {
		return nil, ErrNotEnoughCapacity
	}

	s.Booked += qty

	return s, nil
}

// Normalize trims text fields and fills defaults.
func (e *Experience) Normalize() {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Location = strings.TrimSpace(e.Location)
	e.ImageURL = strings.TrimSpace(e.ImageURL)
	e.About = strings.TrimSpace(e.About)
	e.IncludesText = strings.TrimSpace(e.IncludesText)
	if e.IncludesText == "" {
		e.IncludesText = DefaultIncludesText
	}
	if e.AvailableDates == nil {
		e.AvailableDates = []AvailableDate{}
	}
	for i := range e.AvailableDates {
		if e.AvailableDates[i].Slots == nil {
			e.AvailableDates[i].Slots = []Slot{}
		}
	}
}

// Validate enforces required fields and schedule consistency.
func (e *Experience) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"title", e.Title},
		{"description", e.Description},
		{"location", e.Location},
		{"imageUrl", e.ImageURL},
		{"about", e.About},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, "is required")
		}
	}

	if e.Price < 0 {
		return invalid("price", "must not be negative")
	}

	dates := make(map[string]struct{}, len(e.AvailableDates))
	for _, d := range e.AvailableDates {
		if _, err := time.Parse(DateLayout, d.Date); err != nil {
			return invalid("availableDates.date", "%q is not a YYYY-MM-DD date", d.Date)
		}
		if _, dup := dates[d.Date]; dup {
			return invalid("availableDates.date", "%s is listed twice", d.Date)
		}
		dates[d.Date] = struct{}{}

		times := make(map[string]struct{}, len(d.Slots))
		for _, s := range d.Slots {
			if _, err := time.Parse(TimeLayout, s.Time); err != nil {
				return invalid("availableDates.slots.time", "%q is not a HH:MM time", s.Time)
			}
			if _, dup := times[s.Time]; dup {
				return invalid("availableDates.slots.time", "%s %s is listed twice", d.Date, s.Time)
			}
			times[s.Time] = struct{}{}

			if s.Available < 0 {
				return invalid("availableDates.slots.available", "must not be negative")
			}
			if s.Booked < 0 {
				return invalid("availableDates.slots.booked", "must not be negative")
			}
			if s.Booked > s.Available {
				return invalid(
					"availableDates.slots.available",
					"%s %s has %d booked, capacity %d is too small",
					d.Date, s.Time, s.Booked, s.Available,
				)
			}
		}
	}

	return nil
}

// CarryBookedFrom copies booked counters from prev into slots that keep the
// same date and time and did not specify their own counter.
func (e *Experience) CarryBookedFrom(prev *Experience, explicit map[string]bool) {
	for i := range e.AvailableDates {
		d := &e.AvailableDates[i]
		old, ok := prev.FindDate(d.Date)
		if !ok {
			continue
		}
		for j := range d.Slots {
			s := &d.Slots[j]
			if explicit[SlotKey(d.Date, s.Time)] {
				continue
			}
			if o, ok := old.FindSlot(s.Time); ok {
				s.Booked = o.Booked
			}
		}
	}
}

func SlotKey(date, t string) string {
	return date + " " + t
}
