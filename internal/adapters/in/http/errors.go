package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// writeDomainError maps core errors onto HTTP status codes:
// unknown object → 404, rejected transition or taken order → 409,
// stale compare-and-set write → 412, policy or ownership denial → 403,
// anything the domain rejected as invalid input → 400.
func writeDomainError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrAlreadyAssigned):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrConcurrentModification):
		status = http.StatusPreconditionFailed
		message = err.Error()
	case errors.Is(err, services.ErrOperationNotPermitted):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	}

	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}
