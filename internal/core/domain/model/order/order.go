package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAddressIsRequired is returned when creating an order without a delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")

	// ErrItemsAreRequired is returned when creating an order with no item lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrAlreadyAssigned is the sentinel for a courier assignment attempted on an
	// order that already has one. Use errors.Is to classify; the concrete
	// *AlreadyAssignedError names the courier that won.
	ErrAlreadyAssigned = errors.New("order is already assigned to a courier")
)

// AlreadyAssignedError is returned when a second courier assignment reaches an
// order that already carries one. The losing caller gets a signal instead of a
// silent overwrite, so an acceptance race always has exactly one winner.
type AlreadyAssignedError struct {
	CourierID kernel.UUID
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("order is already assigned to courier %s", e.CourierID)
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrAlreadyAssigned
}

// Order represents a customer's placed food order. It is the aggregate root
// that manages the order lifecycle from placement through fulfilment to a
// terminal state.
//
// Order follows these invariants:
//   - Must have valid customer, restaurant and order identifiers
//   - Must have at least one item snapshot and a non-empty delivery address
//   - Status only moves along the lifecycle graph (see Status)
//   - courierID stays nil until the order enters delivering, is set exactly
//     once, and remains stable until a terminal state
//   - Total is positive: the explicit amount, or the computed sum of item
//     subtotals when no explicit amount was supplied
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Can only be created through NewOrder
// (placement) or RestoreOrder (rehydration from persistence).
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the placing customer, immutable after creation
	customerID kernel.UUID

	// restaurantID references the restaurant, immutable after creation
	restaurantID kernel.UUID

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *kernel.UUID

	// items are the dish snapshots taken at placement time
	items []ItemLine

	// total is the order amount in minor currency units
	total int

	// address is the free-text delivery address, immutable after creation
	address string

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order in pending status with validation. This is the
// only way to place a valid order, ensuring all business invariants hold.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerID: The placing customer (must be valid UUID)
//   - restaurantID: The restaurant fulfilling the order (must be valid UUID)
//   - items: Dish snapshots, at least one, each built via NewItemLine
//   - total: Explicit order amount; pass 0 to fall back to the computed
//     sum of item subtotals
//   - address: Free-text delivery address (must be non-empty)
//
// Returns:
//   - *Order: The placed order with status pending and no courier assigned
//   - error: Validation error if any parameter is invalid
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	items []ItemLine,
	total int,
	address string,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setItems(items),
		order.setAddress(address),
	); err != nil {
		return nil, err
	}

	order.setTotal(total)
	return order, nil
}

// RestoreOrder reconstructs an Order from persistence with its full state.
// Unlike NewOrder it accepts any valid status and courier assignment, but it
// still enforces the status/courier consistency invariant, so corrupt rows
// surface as errors instead of invalid aggregates.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	items []ItemLine,
	total int,
	address string,
	status Status,
	courierID *kernel.UUID,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setRestaurantID(restaurantID),
		order.setItems(items),
		order.setAddress(address),
		order.setStatus(status, courierID),
	); err != nil {
		return nil, err
	}

	order.setTotal(total)
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the placing customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the identifier of the fulfilling restaurant.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Courier returns the assigned courier's ID.
// Returns nil if no courier is assigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Items returns a copy of the dish snapshots taken at placement time.
func (o *Order) Items() []ItemLine {
	items := make([]ItemLine, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order amount in minor currency units.
func (o *Order) Total() int {
	return o.total
}

// Address returns the free-text delivery address.
func (o *Order) Address() string {
	return o.address
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// IsTerminal reports whether the order reached delivered or cancelled.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// TransitionTo moves the order one step along the lifecycle graph, or
// sideways to cancelled from any non-terminal status.
//
// Entering delivering through this method is rejected: the only path into
// delivering is AssignCourier, which couples assignment with the status
// change so an "assigned but still ready" state is never observable.
//
// Returns:
//   - nil on success, with the order's status updated
//   - *IllegalTransitionError when the edge is not in the lifecycle graph
//
// A failed transition leaves the order unchanged.
func (o *Order) TransitionTo(target Status) error {
	if target == Delivering {
		return &IllegalTransitionError{From: o.status, To: target}
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AssignCourier binds a courier to the order and advances it to delivering.
// The coupling is deliberate: assignment and the delivering transition happen
// together, atomically from the caller's point of view.
//
// Preconditions:
//   - The order is in ready status
//   - No courier is assigned yet
//
// Returns:
//   - nil on successful assignment
//   - *AlreadyAssignedError when a courier already holds the order; the
//     existing assignment is kept, never overwritten
//   - *IllegalTransitionError when the order is not ready for pickup
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return &AlreadyAssignedError{CourierID: *o.courierID}
	}

	if o.status != Ready {
		return &IllegalTransitionError{From: o.status, To: Delivering}
	}

	o.courierID = &courierID
	o.status = Delivering
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the placing customer reference.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

// setRestaurantID validates and sets the restaurant reference.
func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = restaurantID
	return nil
}

// setItems validates and stores the item snapshots.
func (o *Order) setItems(items []ItemLine) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]ItemLine, len(items))
	copy(o.items, items)
	return nil
}

// setAddress validates and sets the delivery address.
func (o *Order) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	o.address = address
	return nil
}

// setTotal stores the explicit total, or the computed item sum when the
// explicit amount is absent or non-positive. Must run after setItems.
func (o *Order) setTotal(total int) {
	if total <= 0 {
		total = ComputeTotal(o.items)
	}
	o.total = total
}

// setStatus validates and sets status and courier assignment together,
// enforcing their consistency invariant. Used only by RestoreOrder.
func (o *Order) setStatus(status Status, courierID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}

	o.status = status
	o.courierID = courierID
	return nil
}
