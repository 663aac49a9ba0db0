// Package rabbitmq publishes order change events to a RabbitMQ fanout
// exchange so downstream consumers (notifications, analytics) can react to
// committed status changes without coupling to the HTTP API.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"fooddelivery/internal/core/domain/model/order"
)

const orderChangedExchange = "order.changed"

// orderChangedEvent is the wire payload for an order status change.
type orderChangedEvent struct {
	OrderID   string  `json:"orderId"`
	Status    string  `json:"status"`
	CourierID *string `json:"courierId,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// OrderEventPublisher announces order changes on a durable fanout exchange.
type OrderEventPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger

	mu sync.Mutex // amqp channels are not safe for concurrent publish
}

// NewOrderEventPublisher dials the broker, declares the fanout exchange and
// returns a ready publisher.
func NewOrderEventPublisher(url string, logger *slog.Logger) (*OrderEventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(orderChangedExchange, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", orderChangedExchange, err)
	}

	return &OrderEventPublisher{conn: conn, ch: ch, logger: logger}, nil
}

// PublishOrderChanged sends the order's current state to the fanout
// exchange. The caller has already committed the transaction; a failure here
// is logged and returned but must not be treated as a business error.
func (p *OrderEventPublisher) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	body, err := json.Marshal(newOrderChangedEvent(aggregate))
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, orderChangedExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error("failed to publish order changed event",
			"orderId", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"error", err)
		return fmt.Errorf("publish order changed event: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *OrderEventPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func newOrderChangedEvent(aggregate *order.Order) orderChangedEvent {
	event := orderChangedEvent{
		OrderID:   aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if courierID := aggregate.Courier(); courierID != nil {
		id := courierID.String()
		event.CourierID = &id
	}
	return event
}
