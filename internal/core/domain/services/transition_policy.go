package services

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
)

// ErrOperationNotPermitted is the sentinel for policy denials.
// Use errors.Is to classify; the concrete *OperationNotPermittedError
// names the role and the rejected operation.
var ErrOperationNotPermitted = errors.New("operation is not permitted for role")

// OperationNotPermittedError is returned when an actor's role does not allow
// the requested operation on an order in its current status. This is distinct
// from an illegal transition: the edge may exist in the lifecycle graph but
// belong to a different role.
type OperationNotPermittedError struct {
	Role      Role
	Operation string
}

func (e *OperationNotPermittedError) Error() string {
	return fmt.Sprintf("operation is not permitted for role %s: %s", e.Role, e.Operation)
}

func (e *OperationNotPermittedError) Unwrap() error {
	return ErrOperationNotPermitted
}

// TransitionPolicy decides which lifecycle operations each role may invoke.
// It is a pure lookup table from (role, current status) to permitted target
// statuses, kept as data rather than scattered conditionals so it can be
// unit-tested independently of any transport or screen.
//
// The policy is enforced at the mutation boundary (command handlers), not
// merely reflected in which buttons a client renders. Ownership checks —
// a customer may only cancel their own order, a courier may only complete
// their own delivery — are the caller's responsibility; the policy only
// reasons about roles and statuses.
//
// Intended division of labor:
//   - customer: places orders, cancels while still pending
//   - admin: pending -> confirmed -> preparing -> ready, force-assigns
//     couriers, cancels any non-terminal order
//   - courier: accepts ready unassigned orders, completes own deliveries
type TransitionPolicy struct {
	transitions map[Role]map[order.Status][]order.Status
}

// NewTransitionPolicy creates the policy with the standard role table.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{
		transitions: map[Role]map[order.Status][]order.Status{
			RoleCustomer: {
				order.Pending: {order.Cancelled},
			},
			RoleAdmin: {
				order.Pending:    {order.Confirmed, order.Cancelled},
				order.Confirmed:  {order.Preparing, order.Cancelled},
				order.Preparing:  {order.Ready, order.Cancelled},
				order.Ready:      {order.Cancelled},
				order.Delivering: {order.Cancelled},
			},
			RoleCourier: {
				order.Delivering: {order.Delivered},
			},
		},
	}
}

// AllowedTargets returns the target statuses the role may request from the
// given current status. The returned slice is a copy; mutating it does not
// affect the policy.
func (p TransitionPolicy) AllowedTargets(role Role, current order.Status) []order.Status {
	targets := p.transitions[role][current]
	out := make([]order.Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether the role may request the target status from
// the current one. It only consults the policy table; the lifecycle graph
// itself is enforced separately by the order aggregate.
func (p TransitionPolicy) CanTransition(role Role, current, target order.Status) bool {
	for _, allowed := range p.transitions[role][current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AuthorizeTransition returns nil when the role may request the transition,
// or *OperationNotPermittedError when it may not.
func (p TransitionPolicy) AuthorizeTransition(role Role, current, target order.Status) error {
	if !p.CanTransition(role, current, target) {
		return &OperationNotPermittedError{
			Role:      role,
			Operation: fmt.Sprintf("transition %s -> %s", current, target),
		}
	}
	return nil
}

// AuthorizeAssign returns nil when the role may force-assign a courier to an
// order. Only admins direct assignments.
func (p TransitionPolicy) AuthorizeAssign(role Role) error {
	if role != RoleAdmin {
		return &OperationNotPermittedError{Role: role, Operation: "assign courier"}
	}
	return nil
}

// AuthorizeAccept returns nil when the role may self-accept a ready order.
// Only couriers accept orders for themselves.
func (p TransitionPolicy) AuthorizeAccept(role Role) error {
	if role != RoleCourier {
		return &OperationNotPermittedError{Role: role, Operation: "accept order"}
	}
	return nil
}

// AuthorizePlace returns nil when the role may place a new order.
// Customers place their own orders; admins may create orders on their behalf.
func (p TransitionPolicy) AuthorizePlace(role Role) error {
	if role != RoleCustomer && role != RoleAdmin {
		return &OperationNotPermittedError{Role: role, Operation: "place order"}
	}
	return nil
}
