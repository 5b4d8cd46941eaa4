// Package notify tells the outside world about confirmed bookings.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kirinyoku/tripslot/internal/domain"
)

type Notifier interface {
	BookingConfirmed(ctx context.Context, b domain.Booking) error
}

// Multi fans a booking out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) BookingConfirmed(ctx context.Context, b domain.Booking) error {
	var errs []error
	for _, n := range m {
		if err := n.BookingConfirmed(ctx, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispatcher delivers notifications off the request path. Failures are
// logged and never reach the customer.
type Dispatcher struct {
	n       Notifier
	log     *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(n Notifier, log *slog.Logger, timeout time.Duration) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{n: n, log: log, timeout: timeout}
}

// Go starts delivery of b and returns a channel closed when it is done.
func (d *Dispatcher) Go(ctx context.Context, b domain.Booking) <-chan struct{} {
	done := make(chan struct{})
	if d == nil || d.n == nil {
		close(done)
		return done
	}

	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(done)

		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		if err := d.n.BookingConfirmed(ctx, b); err != nil {
			d.log.Error("booking notification failed",
				slog.String("ref_id", b.RefID),
				slog.Any("error", err),
			)
		}
	}()

	return done
}

// Wait blocks until every started delivery has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}

	drained := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify.Dispatcher.Wait:%w", ctx.Err())
	}
}
