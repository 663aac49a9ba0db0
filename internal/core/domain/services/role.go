package services

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Role identifies which kind of actor is driving an order operation.
// Each role is permitted a different subset of lifecycle transitions
// (see TransitionPolicy).
type Role string

const (
	// RoleCustomer places orders and may cancel them while still pending.
	RoleCustomer Role = "customer"

	// RoleAdmin drives the restaurant-side chain (confirm, prepare, ready),
	// force-assigns couriers, and may cancel any non-terminal order.
	RoleAdmin Role = "admin"

	// RoleCourier accepts ready orders and completes their own deliveries.
	RoleCourier Role = "courier"
)

// RoleFromString parses a role wire name. Returns an error for unrecognized names.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin, RoleCourier:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleAdmin, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String returns the wire name of the role.
func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated identity on whose behalf an operation runs.
// It is supplied by the identity collaborator (the HTTP auth middleware);
// the core only reads it to enforce the transition policy and ownership.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates a validated actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks the actor carries a valid identity and role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
