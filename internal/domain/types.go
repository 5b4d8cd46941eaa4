package domain

import (
	"encoding/json"
	"fmt"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

func (t DiscountType) Valid() bool {
	switch t {
	case DiscountPercentage, DiscountFlat:
		return true
	}
	return false
}

func (t *DiscountType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	v := DiscountType(s)
	if !v.Valid() {
		return fmt.Errorf("unknown discount type %q", s)
	}

	*t = v
	return nil
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingFailed    BookingStatus = "failed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingFailed:
		return true
	}
	return false
}

func (s *BookingStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	v := BookingStatus(raw)
	if !v.Valid() {
		return fmt.Errorf("unknown booking status %q", raw)
	}

	*s = v
	return nil
}
