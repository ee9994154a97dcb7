package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/middleware/auth"
	"github.com/marketsquare/storefront/internal/repo"
)

type Deps struct {
	Repo      *repo.GormRepo
	JWTSecret []byte

	Coupons  *CouponHTTP
	Carts    *CartHTTP
	Checkout *CheckoutHTTP
	Products *ProductHTTP
	Stores   *StoreHTTP
	Category *CategoryHTTP
	Profile  *ProfileHTTP
	Search   *SearchHTTP
	Webhooks *WebhookHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.POST("/webhooks/identity", d.Webhooks.HandleIdentity)

	v1 := e.Group("/api/v1")

	// Public storefront surface.
	v1.GET("/products", d.Products.List)
	v1.GET("/products/:id", d.Products.Get)
	v1.GET("/categories", d.Category.List)
	v1.GET("/categories/:id", d.Category.Get)
	if d.Search != nil {
		v1.GET("/search", d.Search.Search)
	}

	authed := v1.Group("", auth.RequireAuth(d.JWTSecret))

	authed.GET("/profile", d.Profile.Get)
	authed.PATCH("/profile", d.Profile.Update)

	authed.GET("/cart", d.Carts.GetCart)
	authed.POST("/cart/items", d.Carts.AddItem)
	authed.DELETE("/cart/items/:id", d.Carts.RemoveOne)
	authed.DELETE("/cart/items/:id/all", d.Carts.RemoveLine)
	authed.POST("/cart/coupon", d.Coupons.Apply)

	authed.POST("/checkout", d.Checkout.Checkout)
	authed.GET("/orders", d.Checkout.ListOrders)
	authed.GET("/orders/:id", d.Checkout.GetOrder)

	authed.POST("/stores", d.Stores.Create)
	authed.GET("/stores", d.Stores.ListMine)

	// Seller dashboard, gated on ownership of :storeID.
	owner := authed.Group("/stores/:storeID", auth.RequireStoreOwner(d.Repo))
	owner.GET("", d.Stores.Get)
	owner.PATCH("", d.Stores.Rename)
	owner.DELETE("", d.Stores.Delete)

	owner.POST("/products", d.Products.Create)
	owner.PATCH("/products/:id", d.Products.Update)
	owner.DELETE("/products/:id", d.Products.Delete)
	owner.PUT("/products/:id/variants", d.Products.UpsertVariant)

	owner.GET("/coupons", d.Coupons.List)
	owner.PUT("/coupons", d.Coupons.Upsert)
	owner.GET("/coupons/:id", d.Coupons.Get)
	owner.DELETE("/coupons/:id", d.Coupons.Delete)

	admin := authed.Group("/admin", auth.RequireAdmin())
	admin.POST("/categories", d.Category.Create)
	admin.PATCH("/categories/:id", d.Category.Rename)
	admin.DELETE("/categories/:id", d.Category.Delete)
	admin.POST("/subcategories", d.Category.CreateSubcategory)
	admin.DELETE("/categories/:id/subcategories/:subID", d.Category.DeleteSubcategory)
}
