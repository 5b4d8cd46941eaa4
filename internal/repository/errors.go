package repository

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("slot capacity exceeded")
	ErrPromoUnavailable = errors.New("promo code unavailable")
)
