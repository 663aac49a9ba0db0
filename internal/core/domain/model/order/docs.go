// Package order provides domain entities and business logic for the order
// lifecycle in the food-delivery system. It implements the Order aggregate
// root with its status state machine and courier assignment rules.
//
// The package includes:
//   - Order: The aggregate root managing identity, item snapshots, and lifecycle
//   - Status: A state machine enforcing the fulfilment workflow
//   - ItemLine: A value object snapshotting a dish at placement time
//
// Key business rules:
//   - Status moves one step along pending -> confirmed -> preparing -> ready ->
//     delivering -> delivered, or sideways to cancelled from any non-terminal state
//   - delivered and cancelled are terminal
//   - A courier is bound exactly once, atomically with entering delivering;
//     a second assignment fails with AlreadyAssignedError instead of overwriting
//   - Item name and price are copied from the catalog at placement, so later
//     catalog edits never change placed orders
//   - The order total falls back to the sum of item subtotals when no explicit
//     amount is supplied
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
