package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
	"github.com/marketsquare/storefront/pkg/util"
)

type StoreService struct {
	Repo *repo.GormRepo
}

// CreateStore registers a store owned by the caller.
func (s *StoreService) CreateStore(ctx context.Context, ownerID, name string) (*models.Store, error) {
	slug := util.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("store name is required: %w", ErrInvalidInput)
	}
	if _, err := s.Repo.GetStoreBySlug(ctx, slug); err == nil {
		return nil, fmt.Errorf("store slug taken: %w", ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	store := &models.Store{
		ID:      uuid.New(),
		Name:    name,
		Slug:    slug,
		OwnerID: ownerID,
	}
	if err := s.Repo.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.Repo.GetStore(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("store: %w", ErrNotFound)
	}
	return store, err
}

func (s *StoreService) ListMine(ctx context.Context, ownerID string) ([]models.Store, error) {
	return s.Repo.ListStoresByOwner(ctx, ownerID)
}

func (s *StoreService) Rename(ctx context.Context, id uuid.UUID, ownerID, name string) (*models.Store, error) {
	store, err := s.Repo.GetStore(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: %w", ErrNotFound)
		}
		return nil, err
	}
	if store.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}

	store.Name = name
	if err := s.Repo.SaveStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := s.Repo.DeleteStore(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("store: %w", ErrNotFound)
		}
		return err
	}
	return nil
}
