package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	categories, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	category, err := h.Svc.GetCategory(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	category, err := h.Svc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) Rename(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	category, err := h.Svc.RenameCategory(c.Request().Context(), uint(id), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHTTP) CreateSubcategory(c echo.Context) error {
	var req transport.SubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fields := transport.Validate(req); fields != nil {
		return respondFieldErrors(c, fields)
	}

	sub, err := h.Svc.CreateSubcategory(c.Request().Context(), req.CategoryID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *CategoryHTTP) DeleteSubcategory(c echo.Context) error {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil || categoryID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	subID, err := strconv.Atoi(c.Param("subID"))
	if err != nil || subID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subcategory id"})
	}

	if err := h.Svc.DeleteSubcategory(c.Request().Context(), uint(subID), uint(categoryID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
