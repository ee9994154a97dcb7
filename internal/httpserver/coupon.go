package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/middleware/auth"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
)

type CouponHTTP struct {
	Svc   *service.CouponService
	Carts *service.CartService
}

// Upsert handles PUT /stores/:storeID/coupons. Ownership was already
// checked by the store-owner middleware.
func (h *CouponHTTP) Upsert(c echo.Context) error {
	var req transport.UpsertCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	coupon, err := h.Svc.Upsert(c.Request().Context(), service.CouponInput{
		ID:        req.ID,
		StoreID:   auth.Store(c).ID,
		Code:      req.Code,
		Discount:  req.Discount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, coupon)
}

func (h *CouponHTTP) List(c echo.Context) error {
	coupons, err := h.Svc.List(c.Request().Context(), auth.Store(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, coupons)
}

func (h *CouponHTTP) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coupon id"})
	}

	coupon, err := h.Svc.Get(c.Request().Context(), id, auth.Store(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, coupon)
}

func (h *CouponHTTP) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coupon id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id, auth.Store(c).ID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Apply handles POST /cart/coupon for the authenticated shopper.
func (h *CouponHTTP) Apply(c echo.Context) error {
	var req transport.ApplyCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	cart, err := h.Carts.GetCart(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.Svc.Apply(c.Request().Context(), req.Code, cart.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
