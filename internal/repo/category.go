package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Preload("Subcategories").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).Preload("Subcategories").Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *GormRepo) DeleteSubcategory(ctx context.Context, id, categoryID uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND category_id = ?", id, categoryID).Delete(&models.Subcategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
