package transport

import (
	"time"

	"github.com/google/uuid"
)

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// UpsertCouponRequest carries the dashboard coupon form. Discount is left
// untyped because the form may post it as a string; the service normalizes
// it.
type UpsertCouponRequest struct {
	ID        uuid.UUID `json:"id" validate:"required"`
	Code      string    `json:"code" validate:"required"`
	Discount  any       `json:"discount"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type AddCartItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Quantity  uint      `json:"quantity"`
}

type VariantRequest struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Price       float64   `json:"price" validate:"gte=0"`
	Quantity    uint      `json:"quantity"`
	ShippingFee float64   `json:"shipping_fee" validate:"gte=0"`
}

type ProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	Brand         string           `json:"brand"`
	CategoryID    uint             `json:"category_id"`
	SubcategoryID uint             `json:"subcategory_id"`
	Variants      []VariantRequest `json:"variants" validate:"dive"`
}

type StoreRequest struct {
	Name string `json:"name" validate:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type SubcategoryRequest struct {
	Name       string `json:"name" validate:"required"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

type IdentityEvent struct {
	Type string           `json:"type"`
	Data IdentityUserData `json:"data"`
}

type IdentityUserData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
