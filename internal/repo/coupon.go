package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketsquare/storefront/internal/models"
)

// GetCouponsByCode matches the code exactly as stored, case-sensitive.
// Codes are unique per store, not globally, so several stores may have
// issued the same one.
func (r *GormRepo) GetCouponsByCode(ctx context.Context, code string) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.DB.WithContext(ctx).Preload("Store").Where("code = ?", code).Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// GetCouponByID fetches by primary key regardless of store. Callers that
// act on behalf of a store must compare StoreID themselves.
func (r *GormRepo) GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormRepo) GetCoupon(ctx context.Context, id, storeID uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.DB.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormRepo) ListCoupons(ctx context.Context, storeID uuid.UUID) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.DB.WithContext(ctx).Where("store_id = ?", storeID).Order("code ASC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// CodeInUse reports whether another coupon (different id) with the same code
// exists for the store.
func (r *GormRepo) CodeInUse(ctx context.Context, storeID uuid.UUID, code string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Coupon{}).
		Where("store_id = ? AND code = ? AND id <> ?", storeID, code, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertCoupon creates or replaces the row keyed by the client-supplied id.
func (r *GormRepo) UpsertCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(coupon).Error
}

func (r *GormRepo) DeleteCoupon(ctx context.Context, id, storeID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).Delete(&models.Coupon{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
