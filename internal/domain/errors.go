package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDateNotFound      = errors.New("date not available")
	ErrSlotNotFound      = errors.New("slot not available")
	ErrNotEnoughCapacity = errors.New("not enough capacity in slot")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
)

// ValidationError reports a field that failed a domain rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
