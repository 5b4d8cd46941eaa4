package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kirinyoku/tripslot/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingBookingConfirmed = "booking.confirmed"

// Broker publishes booking events to a durable topic exchange.
type Broker struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewBroker(url, exchange string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Broker{conn: conn, ch: ch, exchange: exchange}, nil
}

type bookingEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    domain.Booking `json:"booking"`
}

func newBookingEvent(b domain.Booking) bookingEvent {
	return bookingEvent{
		Type:       RoutingBookingConfirmed,
		OccurredAt: time.Now().UTC(),
		Booking:    b,
	}
}

func (p *Broker) BookingConfirmed(ctx context.Context, b domain.Booking) error {
	const op = "notify.Broker.BookingConfirmed"

	body, err := json.Marshal(newBookingEvent(b))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingBookingConfirmed, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    b.RefID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (p *Broker) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
