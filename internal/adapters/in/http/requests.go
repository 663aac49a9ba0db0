package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerID   string             `json:"customerId" validate:"required,uuid4"`
	RestaurantID string             `json:"restaurantId" validate:"required,uuid4"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Address      string             `json:"address" validate:"required"`
}

// OrderItemRequest is one line of a placement request. Names and prices come
// from the catalog, never from the client.
type OrderItemRequest struct {
	DishID string `json:"dishId" validate:"required,uuid4"`
	Qty    int    `json:"qty" validate:"required,gt=0"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transition.
type TransitionOrderRequest struct {
	Target string `json:"target" validate:"required"`
}

// AssignCourierRequest is the body of POST /api/v1/orders/:id/assign.
type AssignCourierRequest struct {
	CourierID string `json:"courierId" validate:"required,uuid4"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlacedResponse is returned on successful order placement.
type PlacedResponse struct {
	OrderID string `json:"orderId"`
}

// RequestValidator plugs go-playground/validator into echo's Validate hook.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator used by the server.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
