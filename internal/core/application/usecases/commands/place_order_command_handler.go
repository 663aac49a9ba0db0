package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Snapshots dish names and prices from the restaurant catalog so later menu
// edits never change what a past order cost, and creates the order in
// pending status.
type PlaceOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
	policy     services.TransitionPolicy
	publisher  ports.OrderEventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	policy services.TransitionPolicy,
	publisher ports.OrderEventPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
//
// Customers may only place orders for themselves; admins may place on any
// customer's behalf. The restaurant and every selected dish must exist in
// the catalog. Item lines capture the dish name and price at this moment
// and the order total is computed from them.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor := cmd.Actor()
	if err := h.policy.AuthorizePlace(actor.Role()); err != nil {
		return err
	}
	if actor.Role() == services.RoleCustomer && !actor.ID().IsEqual(cmd.CustomerID()) {
		return &services.OperationNotPermittedError{
			Role:      actor.Role(),
			Operation: "place order for another customer",
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurantRepo := uow.RestaurantRepository()
	if _, err := restaurantRepo.Get(ctx, cmd.RestaurantID()); err != nil {
		return err
	}

	dishes, err := restaurantRepo.GetDishes(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}

	items, err := snapshotItems(cmd.Items(), dishes)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.RestaurantID(), items, 0, cmd.Address())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderChanged(ctx, aggregate)

	return nil
}

// snapshotItems resolves every selection against the restaurant's menu and
// freezes the dish name and price into order item lines.
func snapshotItems(selections []ItemSelection, dishes []*restaurant.Dish) ([]order.ItemLine, error) {
	menu := make(map[kernel.UUID]*restaurant.Dish, len(dishes))
	for _, dish := range dishes {
		menu[dish.ID()] = dish
	}

	items := make([]order.ItemLine, 0, len(selections))
	for _, selection := range selections {
		dish, ok := menu[selection.DishID()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("dish", selection.DishID())
		}

		item, err := order.NewItemLine(dish.ID(), dish.Name(), selection.Qty(), dish.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
