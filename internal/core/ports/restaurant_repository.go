package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the persistence contract for the restaurant
// catalog. The catalog is read-mostly: orders snapshot dish names and prices
// at placement time, so later menu edits never rewrite history.
type RestaurantRepository interface {
	// Add persists a new restaurant to the catalog.
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error

	// AddDish persists a new dish on a restaurant's menu.
	AddDish(ctx context.Context, dish *restaurant.Dish) error

	// Get retrieves a restaurant by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)

	// GetAll retrieves the full restaurant catalog.
	GetAll(ctx context.Context) ([]*restaurant.Restaurant, error)

	// GetDishes retrieves the menu of the given restaurant.
	GetDishes(ctx context.Context, restaurantID kernel.UUID) ([]*restaurant.Dish, error)
}
