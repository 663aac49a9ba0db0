// Package http exposes the order lifecycle over a REST API. The server
// translates requests into commands and queries, relying on the auth
// middleware for actor identity and on the domain for every policy decision.
package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

type placeOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error
}

type transitionOrderHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionOrderCommand) error
}

type assignCourierHandler interface {
	Handle(ctx context.Context, cmd commands.AssignCourierCommand) error
}

type acceptOrderHandler interface {
	Handle(ctx context.Context, cmd commands.AcceptOrderCommand) error
}

type activeOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetActiveOrdersQuery) ([]queries.OrderResponse, error)
}

type customerOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetCustomerOrdersQuery) ([]queries.OrderResponse, error)
}

type availableOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetAvailableOrdersQuery) ([]queries.OrderResponse, error)
}

type allCouriersHandler interface {
	Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]queries.CourierResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler      placeOrderHandler
	transitionOrderHandler transitionOrderHandler
	assignCourierHandler   assignCourierHandler
	acceptOrderHandler     acceptOrderHandler

	activeOrdersHandler    activeOrdersHandler
	customerOrdersHandler  customerOrdersHandler
	availableOrdersHandler availableOrdersHandler
	allCouriersHandler     allCouriersHandler

	jwtSecret []byte
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	placeOrder placeOrderHandler,
	transitionOrder transitionOrderHandler,
	assignCourier assignCourierHandler,
	acceptOrder acceptOrderHandler,
	activeOrders activeOrdersHandler,
	customerOrders customerOrdersHandler,
	availableOrders availableOrdersHandler,
	allCouriers allCouriersHandler,
	jwtSecret []byte,
) *Server {
	return &Server{
		placeOrderHandler:      placeOrder,
		transitionOrderHandler: transitionOrder,
		assignCourierHandler:   assignCourier,
		acceptOrderHandler:     acceptOrder,
		activeOrdersHandler:    activeOrders,
		customerOrdersHandler:  customerOrders,
		availableOrdersHandler: availableOrders,
		allCouriersHandler:     allCouriers,
		jwtSecret:              jwtSecret,
	}
}

// RegisterRoutes wires all endpoints into the echo instance. Everything under
// /api/v1 requires a bearer token; /health does not.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", BearerAuth(s.jwtSecret))
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/mine", s.GetMyOrders)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/couriers", s.GetCouriers)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	items := make([]commands.ItemSelection, 0, len(req.Items))
	for _, item := range req.Items {
		dishID, err := kernel.UUIDFromString(item.DishID)
		if err != nil {
			return writeBadRequest(ctx, err)
		}
		selection, err := commands.NewItemSelection(dishID, item.Qty)
		if err != nil {
			return writeBadRequest(ctx, err)
		}
		items = append(items, selection)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(actor, orderID, customerID, restaurantID, items, req.Address)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlacedResponse{OrderID: orderID.String()})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an order
// to the requested status, subject to the caller's role.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(actor, orderID, target)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignCourier handles POST /api/v1/orders/:id/assign - force-assigns a
// specific courier to a ready order.
func (s *Server) AssignCourier(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var req AssignCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(actor, orderID, courierID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - the calling courier
// takes the order for delivery.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(actor, orderID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active - all orders that are not
// delivered or cancelled yet.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.activeOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetMyOrders handles GET /api/v1/orders/mine - the calling customer's order
// history, newest first.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(actor.ID())
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	orders, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetAvailableOrders handles GET /api/v1/orders/available - ready orders with
// no courier yet.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	orders, err := s.availableOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCouriers handles GET /api/v1/couriers - the courier roster.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.allCouriersHandler.Handle(
		ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, couriers)
}

func writeBadRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}
