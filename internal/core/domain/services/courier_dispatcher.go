package services

import (
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no suitable courier is available for
// order dispatch: either no couriers were provided or none of them is
// currently available.
var ErrCourierNotFound = errors.New("courier not found")

// CourierDispatcher is a domain service that picks the best courier for a
// ready order and executes the assignment workflow: the chosen courier is
// marked busy and the order moves to delivering with the courier bound.
//
// Selection prefers the available courier with the highest rating; the first
// candidate wins ties.
type CourierDispatcher struct{}

// NewCourierDispatcher creates a new CourierDispatcher instance.
func NewCourierDispatcher() CourierDispatcher {
	return CourierDispatcher{}
}

// Dispatch assigns the given order to the best available courier.
//
// Returns:
//   - *courier.Courier: the courier now carrying the order
//   - error: ErrCourierNotFound when nobody is available, or the order's
//     assignment error when the order cannot take a courier
//
// Both the courier and the order are mutated on success; on failure neither is.
func (d CourierDispatcher) Dispatch(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	best, err := d.findBestCourier(couriers)
	if err != nil {
		return nil, err
	}

	if err = o.AssignCourier(best.ID()); err != nil {
		return nil, err
	}

	if err = best.TakeDelivery(); err != nil {
		return nil, err
	}

	return best, nil
}

// findBestCourier returns the available courier with the highest rating.
func (d CourierDispatcher) findBestCourier(couriers []*courier.Courier) (*courier.Courier, error) {
	var best *courier.Courier

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsAvailable() {
			continue
		}

		if best == nil || c.Rating() > best.Rating() {
			best = c
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}

	return best, nil
}
