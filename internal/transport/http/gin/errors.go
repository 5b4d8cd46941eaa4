package httpgin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/service/admin"
	"github.com/kirinyoku/tripslot/internal/service/bookings"
	"github.com/kirinyoku/tripslot/internal/service/promo"
	"github.com/kirinyoku/tripslot/internal/service/query"
	"github.com/kirinyoku/tripslot/internal/service/reservation"
)

// respondErr writes the status and message for a service error. Errors it
// does not know become 500 and are attached to the context for the request
// log.
func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var below promo.BelowMinimumError

	switch {
	// catalog
	case errors.Is(err, query.ErrExperienceNotFound),
		errors.Is(err, admin.ErrExperienceNotFound),
		errors.Is(err, reservation.ErrExperienceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Experience not found"})
		return
	case errors.Is(err, admin.ErrValidation),
		errors.Is(err, reservation.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
		return

	// admin promo codes
	case errors.Is(err, admin.ErrPromoNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Promo code not found"})
		return
	case errors.Is(err, admin.ErrPromoConflict):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Promo code already exists"})
		return

	// promo validation
	case errors.Is(err, promo.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid promo code"})
		return
	case errors.Is(err, promo.ErrExpired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Promo code expired"})
		return
	case errors.Is(err, promo.ErrUsageLimitExceeded):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Usage limit exceeded"})
		return
	case errors.As(err, &below):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Minimum purchase amount of ₹%d required", below.Min),
		})
		return
	case errors.Is(err, promo.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "totalAmount must not be negative"})
		return

	// reservation
	case errors.Is(err, reservation.ErrDateUnavailable):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Date not available"})
		return
	case errors.Is(err, reservation.ErrSlotUnavailable),
		errors.Is(err, reservation.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Slots not available"})
		return
	case errors.Is(err, reservation.ErrPromoUnavailable):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Promo code can no longer be applied"})
		return

	// bookings
	case errors.Is(err, bookings.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Booking not found"})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if errors.Is(err, domain.ErrInvalidQuantity) {
		return domain.ErrInvalidQuantity.Error()
	}
	return "invalid request"
}
