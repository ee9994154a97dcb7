package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/logging"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrAlreadyApplied):
		return http.StatusConflict
	case errors.Is(err, service.ErrExpired),
		errors.Is(err, service.ErrNoEligibleItems),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps service errors to statuses. Internal detail stays in the
// logs; clients only ever see sentinel messages.
func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request failed", "error", err)
		msg = "internal server error"
	}
	return c.JSON(status, echo.Map{"error": msg})
}

func respondFieldErrors(c echo.Context, fields []transport.FieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "validation failed",
		"fields": fields,
	})
}
