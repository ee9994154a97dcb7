package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/middleware/auth"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
)

type ProfileHTTP struct {
	Svc *service.UserService
}

func (h *ProfileHTTP) Get(c echo.Context) error {
	user, err := h.Svc.GetProfile(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ProfileHTTP) Update(c echo.Context) error {
	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	user, err := h.Svc.UpdateProfile(c.Request().Context(), auth.UserID(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
