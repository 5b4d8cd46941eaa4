package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/service"
)

// @Summary  Create booking (idempotent)
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string false "retries with the same key replay the first result"
// @Param    req body  CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.Booking
// @Failure  400 {object} ErrorResponse "invalid request or slot unavailable"
// @Failure  404 {object} ErrorResponse "experience not found"
// @Failure  409 {object} ErrorResponse "idempotency key in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /bookings [post]
func handleCreateBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, bindingMessage(err))
			return
		}
		// format is checked by binding
		expID, _ := uuid.Parse(req.ExperienceID)

		b, err := svcs.Reservation.Book(c.Request.Context(), req.toDomain(expID))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

// @Summary  Get booking by reference
// @Tags     checkout
// @Produce  json
// @Param    refId  path  string  true  "Booking reference, e.g. HUF3K9Q2ZTA"
// @Success  200 {object} domain.Booking
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{refId} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svcs.Bookings.GetByRef(c.Request.Context(), c.Param("refId"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, b, cacheNone)
	}
}

// @Summary  Booking QR code
// @Tags     checkout
// @Produce  png
// @Param    refId  path   string  true   "Booking reference"
// @Param    size   query  int     false  "edge length in pixels (64-1024)"
// @Success  200 {file} binary
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{refId}/qr [get]
func handleBookingQR(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		size := parseIntDefault(c.Query("size"), 0)
		png, err := svcs.Bookings.QRCode(c.Request.Context(), c.Param("refId"), size)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Cache-Control", "private, max-age=3600")
		c.Data(http.StatusOK, "image/png", png)
	}
}

// @Summary  List bookings
// @Tags     admin
// @Produce  json
// @Param    limit  query int false "page size (max 200)"
// @Param    offset query int false "offset"
// @Success  200 {array} domain.Booking
// @Router   /admin/bookings [get]
func handleListBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 0)
		offset := parseIntDefault(c.Query("offset"), 0)

		list, err := svcs.Bookings.List(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
