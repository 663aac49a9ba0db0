// Package services contains domain services that coordinate behavior across
// aggregates without belonging to any single one.
//
// The package includes:
//   - TransitionPolicy: the role-scoped authorization table deciding which
//     lifecycle operations each actor role may invoke
//   - CourierDispatcher: selection of the best available courier for a ready
//     order, coupled with the assignment workflow
//   - Role and Actor: the identity vocabulary the policy reasons about
package services
