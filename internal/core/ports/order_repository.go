package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and courier assignment.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using a
	// compare-and-set on the status column: the row is written only when
	// its stored status still equals expected. When another writer got
	// there first, the update touches zero rows and
	// errs.ConcurrentModificationError is returned; the caller decides
	// whether to re-read and retry or surface the conflict.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status, item lines
	// and courier assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInReadyWithoutCourier retrieves all orders that are ready for
	// pickup and have no courier bound yet. Used by the dispatch workflow
	// and by couriers browsing for work.
	GetAllInReadyWithoutCourier(ctx context.Context) ([]*order.Order, error)
}
