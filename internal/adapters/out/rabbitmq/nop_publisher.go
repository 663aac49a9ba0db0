package rabbitmq

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
)

// NopOrderEventPublisher is used when no broker is configured. It logs the
// event at debug level and drops it.
type NopOrderEventPublisher struct {
	logger *slog.Logger
}

// NewNopOrderEventPublisher creates a publisher that discards events.
func NewNopOrderEventPublisher(logger *slog.Logger) *NopOrderEventPublisher {
	return &NopOrderEventPublisher{logger: logger}
}

func (p *NopOrderEventPublisher) PublishOrderChanged(_ context.Context, aggregate *order.Order) error {
	p.logger.Debug("order changed event dropped, no broker configured",
		"orderId", aggregate.ID().String(),
		"status", aggregate.Status().String())
	return nil
}

func (p *NopOrderEventPublisher) Close() error {
	return nil
}
