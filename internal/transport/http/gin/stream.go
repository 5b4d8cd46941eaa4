package httpgin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/service"
	"github.com/kirinyoku/tripslot/internal/service/query"
)

const (
	eventAvailability = "availability"
	eventDeleted      = "deleted"
)

// @Summary  Stream slot availability
// @Description Server-Sent Events. Sends the schedule on connect and again after every change.
// @Tags     experiences
// @Produce  text/event-stream
// @Param    id  path  string  true  "Experience ID (uuid)"
// @Success  200 {array} domain.AvailableDate
// @Failure  404 {object} ErrorResponse
// @Failure  503 {object} ErrorResponse "live updates disabled"
// @Router   /experiences/{id}/availability/stream [get]
func handleAvailabilityStream(svcs *service.Services, sub Subscriber, keepAlive time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseExperienceID(c)
		if !ok {
			return
		}
		if sub == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "live updates unavailable"})
			return
		}

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		changed := make(chan struct{}, 1)
		ready := make(chan struct{})
		subErr := make(chan error, 1)

		go func() {
			subErr <- sub.Subscribe(ctx, ready, func(_ context.Context, changedID uuid.UUID) {
				if changedID != id {
					return
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			})
		}()

		// the snapshot is read after subscribing so no change falls in between
		select {
		case <-ready:
		case err := <-subErr:
			respondErr(c, err)
			return
		case <-ctx.Done():
			return
		}

		dates, err := svcs.Query.Availability(ctx, id)
		if err != nil {
			respondErr(c, err)
			return
		}

		h := c.Writer.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)

		c.SSEvent(eventAvailability, dates)
		c.Writer.Flush()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err := <-subErr:
				if err != nil && !errors.Is(err, context.Canceled) {
					_ = c.Error(err)
				}
				return
			case <-changed:
				dates, err := svcs.Query.Availability(ctx, id)
				if errors.Is(err, query.ErrExperienceNotFound) {
					c.SSEvent(eventDeleted, gin.H{"id": id})
					c.Writer.Flush()
					return
				}
				if err != nil {
					_ = c.Error(err)
					continue
				}
				c.SSEvent(eventAvailability, dates)
				c.Writer.Flush()
			case <-ticker.C:
				if _, err := io.WriteString(c.Writer, ": keep-alive\n\n"); err != nil {
					return
				}
				c.Writer.Flush()
			}
		}
	}
}
