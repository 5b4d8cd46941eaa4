package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExperience() *Experience {
	return &Experience{
		Title:       "Kayaking",
		Description: "Paddle the backwaters",
		Location:    "Udupi",
		ImageURL:    "https://img.example/kayak.jpg",
		Price:       999,
		About:       "Two hours on the water",
		AvailableDates: []AvailableDate{
			{Date: "2025-12-01", Slots: []Slot{{Time: "10:00", Available: 10}}},
		},
	}
}

func TestReserveBooksPlaces(t *testing.T) {
	e := newExperience()

	s, err := e.Reserve("2025-12-01", "10:00", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Booked)
	assert.Equal(t, 3, e.AvailableDates[0].Slots[0].Booked)
	assert.Equal(t, 7, e.AvailableDates[0].Slots[0].Remaining())
}

func TestReserveRejectsOverCapacity(t *testing.T) {
	e := newExperience()
	e.AvailableDates[0].Slots[0].Booked = 8

	_, err := e.Reserve("2025-12-01", "10:00", 3)
	assert.ErrorIs(t, err, ErrNotEnoughCapacity)
	assert.Equal(t, 8, e.AvailableDates[0].Slots[0].Booked)
}

func TestReserveSequenceNeverOverbooks(t *testing.T) {
	e := newExperience()

	for _, qty := range []int{4, 4, 4, 2, 1} {
		_, _ = e.Reserve("2025-12-01", "10:00", qty)
		s := e.AvailableDates[0].Slots[0]
		require.LessOrEqual(t, s.Booked, s.Available)
	}
	assert.Equal(t, 10, e.AvailableDates[0].Slots[0].Booked)
}

func TestReserveUnknownDateOrTime(t *testing.T) {
	e := newExperience()

	_, err := e.Reserve("2025-12-02", "10:00", 1)
	assert.ErrorIs(t, err, ErrDateNotFound)

	_, err = e.Reserve("2025-12-01", "11:00", 1)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = e.Reserve("2025-12-01", "10:00", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Zero(t, e.AvailableDates[0].Slots[0].Booked)
}

func TestExperienceValidate(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(e *Experience)
		field string
	}{
		{"missing title", func(e *Experience) { e.Title = " " }, "title"},
		{"missing image", func(e *Experience) { e.ImageURL = "" }, "imageUrl"},
		{"negative price", func(e *Experience) { e.Price = -1 }, "price"},
		{"bad date", func(e *Experience) { e.AvailableDates[0].Date = "01/12/2025" }, "availableDates.date"},
		{"bad time", func(e *Experience) { e.AvailableDates[0].Slots[0].Time = "10am" }, "availableDates.slots.time"},
		{"duplicate date", func(e *Experience) {
			e.AvailableDates = append(e.AvailableDates, AvailableDate{Date: "2025-12-01"})
		}, "availableDates.date"},
		{"booked above capacity", func(e *Experience) {
			e.AvailableDates[0].Slots[0].Booked = 11
		}, "availableDates.slots.available"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newExperience()
			tc.mut(e)

			err := e.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	assert.NoError(t, newExperience().Validate())
}

func TestNormalizeFillsIncludesText(t *testing.T) {
	e := newExperience()
	e.AvailableDates = nil

	e.Normalize()

	assert.Equal(t, DefaultIncludesText, e.IncludesText)
	assert.NotNil(t, e.AvailableDates)
}

func TestCarryBookedFrom(t *testing.T) {
	prev := newExperience()
	prev.AvailableDates[0].Slots[0].Booked = 4

	next := newExperience()
	next.AvailableDates[0].Slots = append(next.AvailableDates[0].Slots, Slot{Time: "14:00", Available: 5, Booked: 1})

	next.CarryBookedFrom(prev, map[string]bool{SlotKey("2025-12-01", "14:00"): true})

	assert.Equal(t, 4, next.AvailableDates[0].Slots[0].Booked)
	assert.Equal(t, 1, next.AvailableDates[0].Slots[1].Booked)
}
