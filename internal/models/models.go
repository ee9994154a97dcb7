package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID    string `gorm:"primaryKey"           json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `json:"name"`
	Role  string `gorm:"not null;default:user" json:"role"`
}

type Store struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"not null"             json:"name"`
	Slug    string    `gorm:"uniqueIndex;not null" json:"slug"`
	OwnerID string    `gorm:"index;not null"       json:"owner_id"`
}

type Category struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"uniqueIndex;not null"     json:"name"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"not null"                 json:"name"`
	CategoryID uint   `gorm:"index;not null"           json:"category_id"`
}

type Product struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"     json:"id"`
	StoreID       uuid.UUID        `gorm:"type:uuid;index;not null" json:"store_id"`
	Name          string           `gorm:"not null"                 json:"name"`
	Slug          string           `gorm:"index;not null"           json:"slug"`
	Description   string           `json:"description"`
	Brand         string           `json:"brand"`
	CategoryID    uint             `gorm:"index"                    json:"category_id"`
	SubcategoryID uint             `gorm:"index"                    json:"subcategory_id"`
	Variants      []ProductVariant `json:"variants,omitempty"`
}

type ProductVariant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;index;not null"  json:"product_id"`
	Title       string    `gorm:"not null"                  json:"title"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Quantity    uint      `json:"quantity"`
	ShippingFee float64   `gorm:"check:shipping_fee >= 0"   json:"shipping_fee"`
}

// Coupon codes are unique within a store, not globally.
type Coupon struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_coupons_store_code;not null" json:"store_id"`
	Code      string    `gorm:"uniqueIndex:idx_coupons_store_code;not null"           json:"code"`
	Discount  int       `gorm:"not null;check:discount >= 1 AND discount <= 99"       json:"discount"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Store     *Store    `json:"store,omitempty"`
}

type Cart struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   string     `gorm:"uniqueIndex;not null" json:"user_id"`
	Total    float64    `json:"total"`
	CouponID *uuid.UUID `gorm:"type:uuid"            json:"coupon_id"`
	Coupon   *Coupon    `json:"coupon,omitempty"`
	Items    []CartItem `json:"items,omitempty"`
}

type CartItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	CartID      uuid.UUID `gorm:"type:uuid;index;not null"     json:"cart_id"`
	StoreID     uuid.UUID `gorm:"type:uuid;index;not null"     json:"store_id"`
	VariantID   uuid.UUID `gorm:"type:uuid;not null"           json:"variant_id"`
	Name        string    `json:"name"`
	Price       float64   `gorm:"check:price >= 0"             json:"price"`
	Quantity    uint      `gorm:"default:1;check:quantity > 0" json:"quantity"`
	ShippingFee float64   `gorm:"check:shipping_fee >= 0"      json:"shipping_fee"`
}

type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string      `gorm:"index;not null"       json:"user_id"`
	Total     float64     `json:"total"`
	Status    string      `gorm:"not null"             json:"status"`
	CouponID  *uuid.UUID  `gorm:"type:uuid"            json:"coupon_id"`
	CreatedAt int64       `json:"created_at"`
	Items     []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null"       json:"store_id"`
	VariantID uuid.UUID `gorm:"type:uuid;not null"       json:"variant_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  uint      `json:"quantity"`
}
