package courier

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// minRating and maxRating bound the courier rating scale.
	minRating = 0.0
	maxRating = 5.0
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierNotAvailable is returned when a delivery is handed to a courier
	// who is busy or off shift.
	ErrCourierNotAvailable = errors.New("courier is not available")
	// ErrCourierNotBusy is returned when releasing a courier who has no delivery in progress.
	ErrCourierNotBusy = errors.New("courier has no delivery in progress")
)

// Courier represents a delivery courier in the system.
// It is an aggregate root managing courier identity and availability.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and phone
//   - Rating stays within the 0..5 scale
//   - Only an available courier can take a delivery (becomes busy)
//   - A busy courier is released back to available when the delivery
//     finishes or the order is cancelled
//   - A busy courier cannot go offline mid-delivery
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// phone is the courier's contact number
	phone string
	// status tracks availability for dispatch
	status Status
	// rating is the courier's average customer rating, 0..5
	rating float64
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier in available status.
// This is the only way to create a valid Courier instance.
//
// Parameters:
//   - id: Unique identifier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number (must be non-empty)
//   - rating: Average customer rating (must be within 0..5)
func NewCourier(id kernel.UUID, name, phone string, rating float64) (*Courier, error) {
	courier := &Courier{
		status: Available,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
		courier.setRating(rating),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier from persistence with its stored status.
func RestoreCourier(id kernel.UUID, name, phone string, status Status, rating float64) (*Courier, error) {
	courier, err := NewCourier(id, name, phone, rating)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	courier.status = status

	return courier, nil
}

// Validate ensures the Courier instance was properly constructed through NewCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact number.
func (c *Courier) Phone() string {
	return c.phone
}

// Status returns the courier's current availability.
func (c *Courier) Status() Status {
	return c.status
}

// Rating returns the courier's average customer rating.
func (c *Courier) Rating() float64 {
	return c.rating
}

// IsAvailable reports whether the courier can take a new delivery.
func (c *Courier) IsAvailable() bool {
	return c.status == Available
}

// TakeDelivery marks the courier busy for the duration of a delivery.
// Returns ErrCourierNotAvailable when the courier is busy or off shift.
func (c *Courier) TakeDelivery() error {
	if c.status != Available {
		return fmt.Errorf("%w: %s is %s", ErrCourierNotAvailable, c.name, c.status)
	}
	c.status = Busy
	return nil
}

// Release returns a busy courier to available after the delivery finishes
// or the order is cancelled. Returns ErrCourierNotBusy otherwise.
func (c *Courier) Release() error {
	if c.status != Busy {
		return fmt.Errorf("%w: %s is %s", ErrCourierNotBusy, c.name, c.status)
	}
	c.status = Available
	return nil
}

// GoOffline ends the courier's shift. Only an available courier can go
// offline; a delivery in progress must be finished first.
func (c *Courier) GoOffline() error {
	if c.status != Available {
		return fmt.Errorf("%w: %s is %s", ErrCourierNotAvailable, c.name, c.status)
	}
	c.status = Offline
	return nil
}

// GoOnline starts the courier's shift, moving them from offline to available.
// Available and busy couriers are already on shift, so this is a no-op failure.
func (c *Courier) GoOnline() error {
	if c.status != Offline {
		return errs.NewValueIsInvalidErrorWithCause("courier status",
			fmt.Errorf("%s is already on shift", c.name))
	}
	c.status = Available
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *Courier) setRating(rating float64) error {
	if rating < minRating || rating > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}
	c.rating = rating
	return nil
}
