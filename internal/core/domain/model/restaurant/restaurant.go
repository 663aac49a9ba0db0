package restaurant

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrRestaurantIsNotConstructed is returned when using an improperly initialized Restaurant.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is a catalog entity: reference data with no lifecycle beyond
// creation. Orders reference restaurants by ID.
type Restaurant struct {
	id           kernel.UUID
	name         string
	cuisine      string
	rating       float64
	deliveryTime string
	minOrder     int

	guard guard.ConstructorGuard
}

// NewRestaurant creates a validated catalog entry.
//
// Parameters:
//   - id: Unique identifier (must be valid UUID)
//   - name: Restaurant name (must be non-empty)
//   - cuisine: Cuisine label, free text
//   - rating: Average rating, 0..5
//   - deliveryTime: Display estimate such as "25-35 min"
//   - minOrder: Minimum order amount in minor currency units (must not be negative)
func NewRestaurant(
	id kernel.UUID, name, cuisine string, rating float64, deliveryTime string, minOrder int,
) (*Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if rating < 0 || rating > 5 {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, 0.0, 5.0)
	}
	if minOrder < 0 {
		return nil, errs.NewValueIsInvalidError("minOrder")
	}

	return &Restaurant{
		id:           id,
		name:         name,
		cuisine:      cuisine,
		rating:       rating,
		deliveryTime: deliveryTime,
		minOrder:     minOrder,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the restaurant was created through the constructor.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// Name returns the restaurant name.
func (r *Restaurant) Name() string {
	return r.name
}

// Cuisine returns the cuisine label.
func (r *Restaurant) Cuisine() string {
	return r.cuisine
}

// Rating returns the average rating.
func (r *Restaurant) Rating() float64 {
	return r.rating
}

// DeliveryTime returns the display delivery estimate.
func (r *Restaurant) DeliveryTime() string {
	return r.deliveryTime
}

// MinOrder returns the minimum order amount in minor currency units.
func (r *Restaurant) MinOrder() int {
	return r.minOrder
}
