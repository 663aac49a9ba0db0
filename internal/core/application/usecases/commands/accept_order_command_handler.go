package commands

import (
	"context"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// AcceptOrderCommandHandler lets a courier claim a ready order for
// themselves. Shares the assignment workflow with forced assignment; the
// only differences are the role gate and that the courier is the actor.
//
// The courier who loses an acceptance race receives order.ErrAlreadyAssigned
// rather than a bare write conflict, so clients can tell "someone beat you
// to it" apart from "retry".
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
	publisher  ports.OrderEventPublisher
}

// NewAcceptOrderCommandHandler creates a handler for courier order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.TransitionPolicy,
	publisher ports.OrderEventPublisher,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the acceptance command.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.AuthorizeAccept(cmd.Actor().Role()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := bindCourier(ctx, uow, cmd.OrderID(), cmd.Actor().ID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderChanged(ctx, aggregate)

	return nil
}
