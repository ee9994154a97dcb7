package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/middleware/auth"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	cart, err := h.Svc.GetCart(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	item, err := h.Svc.AddItem(c.Request().Context(), auth.UserID(c), req.VariantID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveOne takes one unit off a line; the line disappears with its last
// unit.
func (h *CartHTTP) RemoveOne(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	item, deleted, err := h.Svc.RemoveOne(c.Request().Context(), auth.UserID(c), uint(itemID))
	if err != nil {
		return respondError(c, err)
	}
	if deleted {
		return c.JSON(http.StatusOK, echo.Map{"deleted_item": itemID})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveLine(c echo.Context) error {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	if err := h.Svc.RemoveLine(c.Request().Context(), auth.UserID(c), uint(itemID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_item": itemID})
}
