package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/search"
	"github.com/marketsquare/storefront/pkg/util"
)

type SearchHTTP struct {
	Index *search.Index
}

func (h *SearchHTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query is required"})
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Index.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
