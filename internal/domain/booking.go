package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	RefIDPrefix = "HUF"
	refIDLength = 8
	refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type Booking struct {
	ID              uuid.UUID     `json:"id"`
	FullName        string        `json:"fullName"`
	Email           string        `json:"email"`
	ExperienceID    uuid.UUID     `json:"experienceId"`
	ExperienceTitle string        `json:"experienceTitle"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Quantity        int           `json:"quantity"`
	Subtotal        int           `json:"subtotal"`
	Taxes           int           `json:"taxes"`
	PromoCode       string        `json:"promoCode,omitempty"`
	DiscountAmount  int           `json:"discountAmount"`
	Total           int           `json:"total"`
	RefID           string        `json:"refId"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// BookingRequest is what a customer submits at checkout. Money figures are
// computed by the caller.
type BookingRequest struct {
	ExperienceID   uuid.UUID
	Date           string
	Time           string
	Quantity       int
	FullName       string
	Email          string
	Subtotal       int
	Taxes          int
	PromoCode      string
	DiscountAmount int
	Total          int
}

// NewBooking snapshots exp and req into a confirmed booking. The result is
// never re-derived from the experience afterwards.
func NewBooking(exp *Experience, req BookingRequest, refID string, now time.Time) Booking {
	total := req.Total
	if total < 0 {
		total = 0
	}

	code := NormalizeCode(req.PromoCode)
	discount := req.DiscountAmount
	if code == "" {
		discount = 0
	}

	return Booking{
		ID:              uuid.New(),
		FullName:        req.FullName,
		Email:           req.Email,
		ExperienceID:    exp.ID,
		ExperienceTitle: exp.Title,
		Date:            req.Date,
		Time:            req.Time,
		Quantity:        req.Quantity,
		Subtotal:        req.Subtotal,
		Taxes:           req.Taxes,
		PromoCode:       code,
		DiscountAmount:  discount,
		Total:           total,
		RefID:           refID,
		Status:          BookingConfirmed,
		CreatedAt:       now,
	}
}

// NewRefID returns a customer-facing reference such as HUF7K2Q9ZXA.
func NewRefID() (string, error) {
	b := make([]byte, refIDLength)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("domain.NewRefID: %w", err)
		}
		b[i] = refAlphabet[n.Int64()]
	}
	return RefIDPrefix + string(b), nil
}
