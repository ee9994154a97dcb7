package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/middleware/auth"
	"github.com/marketsquare/storefront/internal/service"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	order, err := h.Svc.Checkout(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHTTP) ListOrders(c echo.Context) error {
	orders, err := h.Svc.ListOrders(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *CheckoutHTTP) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), id, auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
