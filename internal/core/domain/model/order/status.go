package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ErrIllegalTransition is the sentinel for rejected status transitions.
// Use errors.Is to classify; the concrete *IllegalTransitionError carries
// the current and requested status for diagnostics.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError is returned when a requested status change is not an
// edge of the order lifecycle graph: skipping stages, moving backward, or
// leaving a terminal state.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfilment workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready ──> delivering ──> delivered
//	    │            │             │          │            │
//	    └────────────┴─────────────┴──────────┴────────────┴──> cancelled
//
// The forward chain advances one step at a time; any non-terminal status may
// move sideways to cancelled. delivered and cancelled are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a customer places an order.
	Pending

	// Confirmed indicates the restaurant has accepted the order.
	Confirmed

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// Ready indicates the order awaits courier pickup.
	// This is the only status from which a courier can be assigned.
	Ready

	// Delivering indicates a courier has the order in transit.
	// An order in this status always has a courier assigned.
	Delivering

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was abandoned before delivery.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Ready:      "ready",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Ready:      "ready",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// StatusFromString parses a status name as it appears on the wire
// ("pending", "confirmed", ...). Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// next returns the forward-chain successor of s, or Unknown when s has none.
func (s Status) next() Status {
	//nolint:exhaustive // terminal and invalid statuses have no successor
	switch s {
	case Pending:
		return Confirmed
	case Confirmed:
		return Preparing
	case Preparing:
		return Ready
	case Ready:
		return Delivering
	case Delivering:
		return Delivered
	default:
		return Unknown
	}
}

// CanTransitionTo reports whether target is a legal edge from s:
// the single forward step, or cancellation from any non-terminal status.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == Cancelled {
		return true
	}
	return s.next() == target
}

// TransitionTo validates the requested edge and returns the new status.
//
// Returns:
//   - (target, nil) when the edge is legal
//   - (Unknown, *IllegalTransitionError) when it is not
//
// This method is used by Order.TransitionTo to enforce the lifecycle graph.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, &IllegalTransitionError{From: s, To: target}
	}
	return target, nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment.
//
// Rules:
//   - pending, confirmed, preparing and ready orders must not have a courier
//   - delivering and delivered orders must have a courier
//   - cancelled orders may have one (cancellation can happen mid-delivery)
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != Delivering && s != Delivered && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s))
	}

	if !courier && (s == Delivering || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s))
	}

	return nil
}
