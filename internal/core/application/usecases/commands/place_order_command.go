package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrItemSelectionIsNotConstructed = errors.New(
		"ItemSelection must be created via NewItemSelection constructor",
	)
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrItemSelectionsAreRequired = errors.New("at least one item must be ordered")
	ErrQuantityIsInvalid         = errors.New("quantity must be greater than 0")
)

// ItemSelection is one line of a placement request: which dish and how many.
// Dish names and prices are not part of the request; they are snapshotted
// from the catalog at placement time.
type ItemSelection struct { //nolint:recvcheck //using for validation
	dishID kernel.UUID
	qty    int

	guard guard.ConstructorGuard
}

// NewItemSelection creates a validated item selection.
func NewItemSelection(dishID kernel.UUID, qty int) (ItemSelection, error) {
	selection := ItemSelection{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		selection.setDishID(dishID),
		selection.setQty(qty),
	); err != nil {
		return ItemSelection{}, err
	}

	return selection, nil
}

// Validate ensures the selection was created through the constructor.
func (s ItemSelection) Validate() error {
	return s.guard.Validate(ErrItemSelectionIsNotConstructed)
}

// DishID returns the selected dish identifier.
func (s ItemSelection) DishID() kernel.UUID {
	return s.dishID
}

// Qty returns how many units of the dish were requested.
func (s ItemSelection) Qty() int {
	return s.qty
}

func (s *ItemSelection) setDishID(dishID kernel.UUID) error {
	if err := dishID.Validate(); err != nil {
		return err
	}

	s.dishID = dishID
	return nil
}

func (s *ItemSelection) setQty(qty int) error {
	if qty <= 0 {
		return ErrQuantityIsInvalid
	}

	s.qty = qty
	return nil
}

// PlaceOrderCommand represents a request to place a new food order.
// Carries the acting identity, the target restaurant, the selected dishes
// and the delivery address. The order starts its life in pending status.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	actor        services.Actor
	orderID      kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	items        []ItemSelection
	address      string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates the actor, all identifiers, the item selections and the address.
func NewPlaceOrderCommand(
	actor services.Actor,
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []ItemSelection,
	address string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
		cmd.setAddress(address),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Actor returns the identity placing the order.
func (c PlaceOrderCommand) Actor() services.Actor {
	return c.actor
}

// OrderID returns the identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer the order belongs to.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the target restaurant.
func (c PlaceOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns the selected dishes. The returned slice is a copy.
func (c PlaceOrderCommand) Items() []ItemSelection {
	items := make([]ItemSelection, len(c.items))
	copy(items, c.items)
	return items
}

// Address returns the delivery address.
func (c PlaceOrderCommand) Address() string {
	return c.address
}

func (c *PlaceOrderCommand) setActor(actor services.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []ItemSelection) error {
	if len(items) == 0 {
		return ErrItemSelectionsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]ItemSelection, len(items))
	copy(c.items, items)
	return nil
}

func (c *PlaceOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.address = address
	return nil
}
