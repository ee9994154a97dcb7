package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketsquare/storefront/internal/models"
)

type ProductFilter struct {
	StoreID       uuid.UUID
	CategoryID    uint
	SubcategoryID uint
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Variants").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, filter ProductFilter, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if filter.StoreID != uuid.Nil {
		q = q.Where("store_id = ?", filter.StoreID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SubcategoryID != 0 {
		q = q.Where("subcategory_id = ?", filter.SubcategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := q.Preload("Variants").Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id, storeID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND store_id = ?", id, storeID).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error
	})
}

// UpsertVariant creates or replaces a variant keyed by the client-supplied id.
func (r *GormRepo) UpsertVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(variant).Error
}

func (r *GormRepo) GetVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormRepo) DeleteVariant(ctx context.Context, id, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).Delete(&models.ProductVariant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReserveStock decrements variant stock, failing when fewer than qty units
// remain.
func (r *GormRepo) ReserveStock(ctx context.Context, variantID uuid.UUID, qty uint) error {
	res := r.DB.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("id = ? AND quantity >= ?", variantID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
