package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketsquare/storefront/internal/models"
)

// GetCartByUser returns the user's cart, creating an empty one on first use.
func (r *GormRepo) GetCartByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Preload("Items").Preload("Coupon").
		Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{ID: uuid.New(), UserID: userID}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartForUpdate locks the cart row until the enclosing transaction
// commits. Items and any applied coupon are loaded alongside. sqlite has no
// row locks; its single-writer model covers the same invariant in tests.
func (r *GormRepo) GetCartForUpdate(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	q := r.DB.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart models.Cart
	if err := q.Where("id = ?", cartID).First(&cart).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Find(&cart.Items).Error; err != nil {
		return nil, err
	}
	if cart.CouponID != nil {
		var coupon models.Coupon
		if err := r.DB.WithContext(ctx).Where("id = ?", *cart.CouponID).First(&coupon).Error; err != nil {
			return nil, err
		}
		cart.Coupon = &coupon
	}
	return &cart, nil
}

func (r *GormRepo) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items").Preload("Coupon").Preload("Coupon.Store").
		Where("id = ?", cartID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) UpdateCart(ctx context.Context, cartID uuid.UUID, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", cartID).Updates(fields).Error
}

// AddCartItem merges with an existing line for the same variant, otherwise
// inserts a new line. merged reports which branch was taken so the caller
// can adjust the cart total by the right delta (shipping counts once per
// line).
func (r *GormRepo) AddCartItem(ctx context.Context, item *models.CartItem) (merged bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND variant_id = ?", item.CartID, item.VariantID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			merged = true
			return tx.Where("cart_id = ? AND variant_id = ?", item.CartID, item.VariantID).First(item).Error
		}
		return tx.Create(item).Error
	})
	return merged, err
}

func (r *GormRepo) AdjustCartTotal(ctx context.Context, cartID uuid.UUID, delta float64) error {
	return r.DB.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", cartID).
		Update("total", gorm.Expr("total + ?", delta)).Error
}

func (r *GormRepo) GetCartItem(ctx context.Context, itemID uint, cartID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, itemID uint, cartID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&models.Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"total": 0, "coupon_id": nil}).Error
}
