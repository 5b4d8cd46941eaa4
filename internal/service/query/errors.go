package query

import (
	"errors"
)

var (
	ErrExperienceNotFound = errors.New("experience not found")
)
