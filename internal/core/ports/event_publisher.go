package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed order changes to interested
// consumers (notification services, analytics). Publishing happens after the
// transaction commits; a publish failure must not undo the state change, so
// implementations log and drop rather than error the business operation.
type OrderEventPublisher interface {
	// PublishOrderChanged announces that the order reached a new status.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error

	// Close releases the underlying connection.
	Close() error
}
