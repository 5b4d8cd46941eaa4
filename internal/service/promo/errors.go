package promo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCode        = errors.New("invalid promo code")
	ErrExpired            = errors.New("promo code expired")
	ErrUsageLimitExceeded = errors.New("usage limit exceeded")
	ErrInvalidAmount      = errors.New("total amount must not be negative")
)

type BelowMinimumError struct {
	Min int
}

func (e BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum purchase amount of ₹%d required", e.Min)
}
