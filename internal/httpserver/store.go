package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/middleware/auth"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
)

type StoreHTTP struct {
	Svc *service.StoreService
}

func (h *StoreHTTP) Create(c echo.Context) error {
	var req transport.StoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	store, err := h.Svc.CreateStore(c.Request().Context(), auth.UserID(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, store)
}

func (h *StoreHTTP) ListMine(c echo.Context) error {
	stores, err := h.Svc.ListMine(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// Get returns the store loaded by the ownership middleware.
func (h *StoreHTTP) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.Store(c))
}

func (h *StoreHTTP) Rename(c echo.Context) error {
	var req transport.StoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	store, err := h.Svc.Rename(c.Request().Context(), auth.Store(c).ID, auth.Store(c).OwnerID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

func (h *StoreHTTP) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), auth.Store(c).ID, auth.Store(c).OwnerID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
