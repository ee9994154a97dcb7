package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/middleware/auth"
	"github.com/marketsquare/storefront/internal/repo"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
	"github.com/marketsquare/storefront/pkg/util"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHTTP) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// List serves the public storefront listing with optional store, category
// and subcategory filters.
func (h *ProductHTTP) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{
		CategoryID:    uint(parseIntDefault(c.QueryParam("category"), 0)),
		SubcategoryID: uint(parseIntDefault(c.QueryParam("subcategory"), 0)),
	}
	if s := c.QueryParam("store"); s != "" {
		storeID, err := uuid.Parse(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
		}
		filter.StoreID = storeID
	}

	total, items, err := h.Svc.ListProducts(c.Request().Context(), filter, offset, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHTTP) bindInput(c echo.Context) (service.ProductInput, bool, error) {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return service.ProductInput{}, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return service.ProductInput{}, false, respondFieldErrors(c, fields)
	}

	in := service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	}
	for _, v := range req.Variants {
		in.Variants = append(in.Variants, service.VariantInput{
			ID:          v.ID,
			Title:       v.Title,
			Price:       v.Price,
			Quantity:    v.Quantity,
			ShippingFee: v.ShippingFee,
		})
	}
	return in, true, nil
}

func (h *ProductHTTP) Create(c echo.Context) error {
	in, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), auth.Store(c).ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	in, ok, err := h.bindInput(c)
	if !ok {
		return err
	}

	product, err := h.Svc.UpdateProduct(c.Request().Context(), id, auth.Store(c).ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id, auth.Store(c).ID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpsertVariant handles PUT /stores/:storeID/products/:id/variants.
func (h *ProductHTTP) UpsertVariant(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req transport.VariantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	variant, err := h.Svc.UpsertVariant(c.Request().Context(), productID, auth.Store(c).ID, service.VariantInput{
		ID:          req.ID,
		Title:       req.Title,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ShippingFee: req.ShippingFee,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, variant)
}
