package restaurant

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrDishIsNotConstructed is returned when using an improperly initialized Dish.
var ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")

// Dish is a catalog entity belonging to a restaurant. Order placement copies
// its name and price into item snapshots, so later edits to a dish never
// affect placed orders.
type Dish struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	description  string
	category     string
	price        int

	guard guard.ConstructorGuard
}

// NewDish creates a validated dish for a restaurant's menu.
// Price is in minor currency units and must be positive.
func NewDish(
	id, restaurantID kernel.UUID, name, description, category string, price int,
) (*Dish, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := restaurantID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if price <= 0 {
		return nil, errs.NewValueIsInvalidError("price")
	}

	return &Dish{
		id:           id,
		restaurantID: restaurantID,
		name:         name,
		description:  description,
		category:     category,
		price:        price,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the dish was created through the constructor.
func (d *Dish) Validate() error {
	if d == nil {
		return ErrDishIsNotConstructed
	}
	return d.guard.Validate(ErrDishIsNotConstructed)
}

// ID returns the dish's unique identifier.
func (d *Dish) ID() kernel.UUID {
	return d.id
}

// RestaurantID returns the owning restaurant's identifier.
func (d *Dish) RestaurantID() kernel.UUID {
	return d.restaurantID
}

// Name returns the dish name.
func (d *Dish) Name() string {
	return d.name
}

// Description returns the dish description.
func (d *Dish) Description() string {
	return d.description
}

// Category returns the menu category label.
func (d *Dish) Category() string {
	return d.category
}

// Price returns the unit price in minor currency units.
func (d *Dish) Price() int {
	return d.price
}
