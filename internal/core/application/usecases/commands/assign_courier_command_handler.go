package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// AssignCourierCommandHandler binds a chosen courier to a ready order.
// Admin-only: couriers claim work for themselves through acceptance instead.
// The order's move to delivering and the courier's move to busy commit in
// one transaction, guarded by a compare-and-set on the order status.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
	publisher  ports.OrderEventPublisher
}

// NewAssignCourierCommandHandler creates a handler for forced courier assignment.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	policy services.TransitionPolicy,
	publisher ports.OrderEventPublisher,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
//
// When the compare-and-set loses to a concurrent writer, the order is
// re-read: a courier already bound means the race was an assignment race
// and the caller gets order.ErrAlreadyAssigned naming the winner; any other
// interleaving surfaces as the concurrent modification itself.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.AuthorizeAssign(cmd.Actor().Role()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := bindCourier(ctx, uow, cmd.OrderID(), cmd.CourierID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderChanged(ctx, aggregate)

	return nil
}

// bindCourier performs the shared assignment workflow: load both aggregates,
// bind the courier to the order, mark the courier busy and persist both under
// a compare-and-set on the order's prior status.
func bindCourier(
	ctx context.Context,
	uow UoW,
	orderID kernel.UUID,
	courierID kernel.UUID,
) (*order.Order, error) {
	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expected := aggregate.Status()

	chosen, err := courierRepo.Get(ctx, courierID)
	if err != nil {
		return nil, err
	}

	if err = aggregate.AssignCourier(chosen.ID()); err != nil {
		return nil, err
	}
	if err = chosen.TakeDelivery(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate, expected); err != nil {
		return nil, resolveAssignConflict(ctx, orderRepo, orderID, err)
	}

	if err = courierRepo.Update(ctx, chosen); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// resolveAssignConflict distinguishes losing an assignment race from other
// concurrent writes. The order is re-read: a bound courier means someone else
// claimed it first.
func resolveAssignConflict(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	orderID kernel.UUID,
	casErr error,
) error {
	if !errors.Is(casErr, errs.ErrConcurrentModification) {
		return casErr
	}

	fresh, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return casErr
	}

	if winner := fresh.Courier(); winner != nil {
		return &order.AlreadyAssignedError{CourierID: *winner}
	}

	return casErr
}
