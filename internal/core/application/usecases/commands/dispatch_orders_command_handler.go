package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ErrNothingToDispatch is returned when no ready unassigned orders exist or
// no courier is available to take them. Schedulers treat it as an idle tick,
// not a failure.
var ErrNothingToDispatch = errors.New("nothing to dispatch")

// DispatchOrdersCommandHandler matches ready unassigned orders with
// available couriers. The CourierDispatcher picks the highest-rated
// available courier for each order; each drafted courier turns busy, so one
// courier never receives two orders in a single run.
//
// All matches of one run commit in a single transaction; order writes use
// compare-and-set so a courier who self-accepted mid-run wins and the run
// fails over to a retry on the next tick.
type DispatchOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.CourierDispatcher
	publisher  ports.OrderEventPublisher
}

// NewDispatchOrdersCommandHandler creates a handler for scheduled dispatch.
func NewDispatchOrdersCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
) DispatchOrdersCommandHandler {
	return DispatchOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewCourierDispatcher(),
		publisher:  publisher,
	}
}

// Handle processes the dispatch command.
func (h DispatchOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchOrdersCommand) error {
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
	courierRepo := uow.CourierRepository()

	orders, err := orderRepo.GetAllInReadyWithoutCourier(ctx)
	if err != nil {
		return err
	}

	couriers, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	if len(orders) == 0 || len(couriers) == 0 {
		return ErrNothingToDispatch
	}

	dispatched := make([]*order.Order, 0, len(orders))
	for _, aggregate := range orders {
		drafted, err := h.dispatcher.Dispatch(aggregate, couriers)
		if errors.Is(err, services.ErrCourierNotFound) {
			break
		}
		if err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate, order.Ready); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, drafted); err != nil {
			return err
		}

		dispatched = append(dispatched, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range dispatched {
		_ = h.publisher.PublishOrderChanged(ctx, aggregate)
	}

	return nil
}
