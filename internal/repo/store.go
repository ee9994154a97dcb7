package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
)

func (r *GormRepo) CreateStore(ctx context.Context, store *models.Store) error {
	return r.DB.WithContext(ctx).Create(store).Error
}

func (r *GormRepo) GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *GormRepo) GetStoreBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *GormRepo) ListStoresByOwner(ctx context.Context, ownerID string) ([]models.Store, error) {
	var stores []models.Store
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *GormRepo) SaveStore(ctx context.Context, store *models.Store) error {
	return r.DB.WithContext(ctx).Save(store).Error
}

func (r *GormRepo) DeleteStore(ctx context.Context, id uuid.UUID, ownerID string) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Store{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
