package admin

import (
	"errors"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrPromoNotFound      = errors.New("promo code not found")
	ErrPromoConflict      = errors.New("promo code already exists")
)
