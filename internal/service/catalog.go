package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/events"
	"github.com/marketsquare/storefront/internal/logging"
	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
	"github.com/marketsquare/storefront/internal/search"
	"github.com/marketsquare/storefront/pkg/util"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Index  *search.Index // nil when search is not wired
}

type VariantInput struct {
	ID          uuid.UUID
	Title       string
	Price       float64
	Quantity    uint
	ShippingFee float64
}

type ProductInput struct {
	Name          string
	Description   string
	Brand         string
	CategoryID    uint
	SubcategoryID uint
	Variants      []VariantInput
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}
	return product, err
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, filter, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, storeID uuid.UUID, in ProductInput) (*models.Product, error) {
	if err := s.checkCategory(ctx, in.CategoryID, in.SubcategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            uuid.New(),
		StoreID:       storeID,
		Name:          in.Name,
		Slug:          util.Slugify(in.Name),
		Description:   in.Description,
		Brand:         in.Brand,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
	}
	for _, v := range in.Variants {
		id := v.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		product.Variants = append(product.Variants, models.ProductVariant{
			ID:          id,
			ProductID:   product.ID,
			Title:       v.Title,
			Price:       v.Price,
			Quantity:    v.Quantity,
			ShippingFee: v.ShippingFee,
		})
	}

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, product.ID.String(), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"store_id":   storeID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id, storeID uuid.UUID, in ProductInput) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product: %w", ErrNotFound)
		}
		return nil, err
	}
	if product.StoreID != storeID {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}
	if err := s.checkCategory(ctx, in.CategoryID, in.SubcategoryID); err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Slug = util.Slugify(in.Name)
	product.Description = in.Description
	product.Brand = in.Brand
	product.CategoryID = in.CategoryID
	product.SubcategoryID = in.SubcategoryID
	product.Variants = nil

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	// Variants come through the upsert path so client-supplied ids survive
	// edits without duplicating rows.
	for _, v := range in.Variants {
		if _, err := s.UpsertVariant(ctx, id, storeID, v); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.index(ctx, updated)
	s.publish(ctx, id.String(), map[string]any{
		"type":       "product_updated",
		"product_id": id,
		"store_id":   storeID,
		"name":       updated.Name,
	})
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id, storeID uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product: %w", ErrNotFound)
		}
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Error("search delete failed", "product_id", id, "error", err)
		}
	}
	s.publish(ctx, id.String(), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
		"store_id":   storeID,
	})
	return nil
}

// UpsertVariant creates or replaces a variant keyed by the client-supplied
// id, after checking the product belongs to the store.
func (s *CatalogService) UpsertVariant(ctx context.Context, productID, storeID uuid.UUID, in VariantInput) (*models.ProductVariant, error) {
	if in.ID == uuid.Nil {
		return nil, fmt.Errorf("variant id is required: %w", ErrInvalidInput)
	}
	if in.Price < 0 || in.ShippingFee < 0 {
		return nil, fmt.Errorf("price and shipping fee must be non-negative: %w", ErrInvalidInput)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product: %w", ErrNotFound)
		}
		return nil, err
	}
	if product.StoreID != storeID {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}

	// Variant ids ride along in public product listings, so an id already
	// attached to another product must not be re-parentable here.
	if existing, err := s.Repo.GetVariant(ctx, in.ID); err == nil {
		if existing.ProductID != productID {
			return nil, fmt.Errorf("variant: %w", ErrNotFound)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	variant := &models.ProductVariant{
		ID:          in.ID,
		ProductID:   productID,
		Title:       in.Title,
		Price:       in.Price,
		Quantity:    in.Quantity,
		ShippingFee: in.ShippingFee,
	}
	if err := s.Repo.UpsertVariant(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *CatalogService) checkCategory(ctx context.Context, categoryID, subcategoryID uint) error {
	if categoryID == 0 {
		if subcategoryID != 0 {
			return fmt.Errorf("subcategory without category: %w", ErrInvalidInput)
		}
		return nil
	}
	category, err := s.Repo.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category: %w", ErrNotFound)
		}
		return err
	}
	if subcategoryID == 0 {
		return nil
	}
	for _, sub := range category.Subcategories {
		if sub.ID == subcategoryID {
			return nil
		}
	}
	return fmt.Errorf("subcategory does not belong to category: %w", ErrInvalidInput)
}

func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Error("search index failed", "product_id", product.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pubCtx, events.TopicCatalog, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}
