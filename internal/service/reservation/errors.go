package reservation

import (
	"errors"
)

var (
	ErrValidation         = errors.New("invalid booking request")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrDateUnavailable    = errors.New("date not available")
	ErrSlotUnavailable    = errors.New("slots not available")
	ErrCapacityExceeded   = errors.New("slots not available")
	ErrPromoUnavailable   = errors.New("promo code can no longer be applied")
	ErrRefIDExhausted     = errors.New("could not allocate a booking reference")
)
