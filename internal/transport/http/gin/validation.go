package httpgin

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kirinyoku/tripslot/internal/domain"
)

var registerOnce sync.Once

// registerValidators installs the custom binding rules:
//
//	isodate      YYYY-MM-DD
//	clock        HH:MM, 24h
//	discounttype percentage or flat
//	expiry       RFC 3339 timestamp or YYYY-MM-DD
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("isodate", layoutRule(domain.DateLayout))
		_ = v.RegisterValidation("clock", layoutRule(domain.TimeLayout))
		_ = v.RegisterValidation("discounttype", func(fl validator.FieldLevel) bool {
			return domain.DiscountType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
			_, err := parseExpiry(fl.Field().String())
			return err == nil
		})
	})
}

func layoutRule(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != len(layout) {
			return false
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}

// parseExpiry accepts a full timestamp or a bare date, read as midnight UTC.
func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateLayout, s)
}

// bindingMessage turns decoder and validator errors into one line a client
// can act on.
func bindingMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return "invalid request body: " + err.Error()
	}

	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "uuid":
		return field + " must be a UUID"
	case "isodate":
		return field + " must be a YYYY-MM-DD date"
	case "clock":
		return field + " must be a HH:MM time"
	case "discounttype":
		return fmt.Sprintf("%s must be %q or %q", field, domain.DiscountPercentage, domain.DiscountFlat)
	case "expiry":
		return field + " must be a date or an RFC 3339 timestamp"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return field + " is invalid"
}
