package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// TransitionOrderCommandHandler moves an order through its lifecycle.
//
// The handler enforces three layers in sequence: the role policy (may this
// kind of actor request this edge), ownership (is it their order or their
// delivery), and the lifecycle graph itself inside the aggregate. The write
// is a compare-and-set against the status read at the start of the
// transaction, so two staff members confirming the same order at once
// produce exactly one confirmation and one conflict.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
	publisher  ports.OrderEventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.TransitionPolicy,
	publisher ports.OrderEventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the transition command.
//
// When the transition ends the delivery (delivered, or cancelled while a
// courier is bound), the courier is released back to available in the same
// transaction.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	expected := aggregate.Status()

	actor := cmd.Actor()
	if err = h.policy.AuthorizeTransition(actor.Role(), expected, cmd.Target()); err != nil {
		return err
	}
	if err = authorizeOwnership(actor, aggregate); err != nil {
		return err
	}

	if err = aggregate.TransitionTo(cmd.Target()); err != nil {
		return err
	}

	released, err := releaseCourierIfDone(ctx, uow.CourierRepository(), aggregate)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate, expected); err != nil {
		return err
	}

	if released != nil {
		if err = uow.CourierRepository().Update(ctx, released); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderChanged(ctx, aggregate)

	return nil
}

// authorizeOwnership restricts customers to their own orders and couriers to
// their own deliveries. Admins operate on any order.
func authorizeOwnership(actor services.Actor, aggregate *order.Order) error {
	switch actor.Role() {
	case services.RoleCustomer:
		if !actor.ID().IsEqual(aggregate.CustomerID()) {
			return &services.OperationNotPermittedError{
				Role:      actor.Role(),
				Operation: "operate on another customer's order",
			}
		}
	case services.RoleCourier:
		if aggregate.Courier() == nil || !actor.ID().IsEqual(*aggregate.Courier()) {
			return &services.OperationNotPermittedError{
				Role:      actor.Role(),
				Operation: "operate on another courier's delivery",
			}
		}
	case services.RoleAdmin:
	}
	return nil
}

// releaseCourierIfDone frees the bound courier when the order just reached a
// terminal status. Returns the released courier, or nil when nothing changed.
func releaseCourierIfDone(
	ctx context.Context,
	courierRepo ports.CourierRepository,
	aggregate *order.Order,
) (*courier.Courier, error) {
	if !aggregate.IsTerminal() || aggregate.Courier() == nil {
		return nil, nil
	}

	bound, err := courierRepo.Get(ctx, *aggregate.Courier())
	if err != nil {
		return nil, err
	}

	if err = bound.Release(); err != nil {
		return nil, err
	}

	return bound, nil
}
