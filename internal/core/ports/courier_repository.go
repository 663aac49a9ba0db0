// Package ports defines the contracts between the application core and
// infrastructure adapters. Repositories persist aggregates, the unit of work
// scopes them to one transaction, and the event publisher announces order
// changes to the outside world.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves all couriers currently able to take a
	// delivery. Busy and offline couriers are excluded.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
