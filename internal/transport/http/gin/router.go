package httpgin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisrepo "github.com/kirinyoku/tripslot/internal/repository/redis"
	"github.com/kirinyoku/tripslot/internal/service"
	"github.com/kirinyoku/tripslot/internal/service/admin"
	"github.com/kirinyoku/tripslot/internal/service/query"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Subscriber delivers the ids of experiences whose availability changed.
type Subscriber interface {
	Subscribe(ctx context.Context, ready chan<- struct{}, handler func(ctx context.Context, id uuid.UUID)) error
}

// Options carries the optional collaborators of the router. Any of them may
// be left empty.
type Options struct {
	Idempotency    *redisrepo.IdempotencyStore
	BookingLimiter *redisrepo.RateLimiter
	PromoLimiter   *redisrepo.RateLimiter
	Subscriber     Subscriber
	CORSOrigins    []string
	// KeepAlive is the interval of comment frames on availability streams.
	KeepAlive time.Duration
}

func NewRouter(
	svcs *service.Services,
	opts Options,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	registerValidators()

	if opts.KeepAlive <= 0 {
		opts.KeepAlive = 15 * time.Second
	}

	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS(opts.CORSOrigins))
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog
	r.GET("/experiences", handleListExperiences(svcs))
	r.POST("/experiences", handleCreateExperience(svcs))
	r.GET("/experiences/:id", handleGetExperience(svcs))
	r.PUT("/experiences/:id", handleUpdateExperience(svcs))
	r.DELETE("/experiences/:id", handleDeleteExperience(svcs))
	r.GET("/experiences/:id/availability/stream", handleAvailabilityStream(svcs, opts.Subscriber, opts.KeepAlive))

	// Checkout
	r.POST("/promo/validate",
		RateLimitMiddleware(opts.PromoLimiter, logger),
		handleValidatePromo(svcs),
	)
	r.POST("/bookings",
		RateLimitMiddleware(opts.BookingLimiter, logger),
		IdempotencyMiddleware(opts.Idempotency, redisrepo.KeyIdemBooking),
		handleCreateBooking(svcs),
	)
	r.GET("/bookings/:refId", handleGetBooking(svcs))
	r.GET("/bookings/:refId/qr", handleBookingQR(svcs))

	// Admin-API
	admin := r.Group("/admin")
	{
		admin.GET("/promo-codes", handleListPromoCodes(svcs))
		admin.GET("/promo-codes/:id", handleGetPromoCode(svcs))
		admin.POST("/promo-codes", handleCreatePromoCode(svcs))
		admin.PUT("/promo-codes/:id", handleUpdatePromoCode(svcs))
		admin.DELETE("/promo-codes/:id", handleDeletePromoCode(svcs))

		admin.GET("/bookings", handleListBookings(svcs))
	}

	return r
}

// --- Helpers ---

// parseUUIDParam answers a malformed id the same way as an unknown one:
// notFound goes through respondErr.
func parseUUIDParam(c *gin.Context, name string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondErr(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

func parseExperienceID(c *gin.Context) (uuid.UUID, bool) {
	return parseUUIDParam(c, "id", query.ErrExperienceNotFound)
}

func parsePromoCodeID(c *gin.Context) (uuid.UUID, bool) {
	return parseUUIDParam(c, "id", admin.ErrPromoNotFound)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
