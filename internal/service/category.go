package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

// ListCategories returns categories with their subcategories so the UI can
// drive the cascading category selector from one call.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}
	return category, err
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) RenameCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category: %w", ErrNotFound)
		}
		return nil, err
	}
	category.Name = name
	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category: %w", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CategoryService) CreateSubcategory(ctx context.Context, categoryID uint, name string) (*models.Subcategory, error) {
	if _, err := s.Repo.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category: %w", ErrNotFound)
		}
		return nil, err
	}

	sub := &models.Subcategory{Name: name, CategoryID: categoryID}
	if err := s.Repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *CategoryService) DeleteSubcategory(ctx context.Context, id, categoryID uint) error {
	if err := s.Repo.DeleteSubcategory(ctx, id, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("subcategory: %w", ErrNotFound)
		}
		return err
	}
	return nil
}
