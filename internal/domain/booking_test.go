package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refIDPattern = regexp.MustCompile(`^HUF[A-Z0-9]{8}$`)

func TestNewRefID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id, err := NewRefID()
		require.NoError(t, err)
		require.Regexp(t, refIDPattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 200)
}

func TestNewBookingSnapshotsExperience(t *testing.T) {
	exp := newExperience()
	exp.ID = uuid.New()
	now := time.Now()

	b := NewBooking(exp, BookingRequest{
		ExperienceID:   exp.ID,
		Date:           "2025-12-01",
		Time:           "10:00",
		Quantity:       2,
		FullName:       "Asha Rao",
		Email:          "asha@example.com",
		Subtotal:       1998,
		Taxes:          200,
		PromoCode:      "flat100",
		DiscountAmount: 100,
		Total:          2098,
	}, "HUFABCDEFGH", now)

	exp.Title = "Renamed later"

	assert.Equal(t, "Kayaking", b.ExperienceTitle)
	assert.Equal(t, "FLAT100", b.PromoCode)
	assert.Equal(t, BookingConfirmed, b.Status)
	assert.Equal(t, now, b.CreatedAt)
	assert.NotEqual(t, uuid.Nil, b.ID)
}

func TestNewBookingFloorsTotal(t *testing.T) {
	exp := newExperience()

	b := NewBooking(exp, BookingRequest{Total: -50, DiscountAmount: 300}, "HUF00000000", time.Now())

	assert.Zero(t, b.Total)
	assert.Zero(t, b.DiscountAmount, "discount without a code is dropped")
}
