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
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.Repo.GetCartByUser(ctx, userID)
}

// AddItem puts qty units of a variant into the user's cart, merging with an
// existing line for the same variant. The cart total moves by the line
// delta, so a previously applied discount stays folded in.
func (s *CartService) AddItem(ctx context.Context, userID string, variantID uuid.UUID, qty uint) (*models.CartItem, error) {
	if variantID == uuid.Nil {
		return nil, fmt.Errorf("variant id is required: %w", ErrInvalidInput)
	}
	if qty < 1 {
		qty = 1
	}

	variant, err := s.Repo.GetVariant(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant: %w", ErrNotFound)
		}
		return nil, err
	}
	product, err := s.Repo.GetProduct(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		CartID:      cart.ID,
		StoreID:     product.StoreID,
		VariantID:   variant.ID,
		Name:        product.Name + " / " + variant.Title,
		Price:       variant.Price,
		Quantity:    qty,
		ShippingFee: variant.ShippingFee,
	}
	merged, err := s.Repo.AddCartItem(ctx, &item)
	if err != nil {
		return nil, err
	}

	delta := variant.Price * float64(qty)
	if !merged {
		delta += variant.ShippingFee
	}
	if err := s.Repo.AdjustCartTotal(ctx, cart.ID, delta); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"cart_id":    cart.ID,
		"variant_id": variant.ID,
		"quantity":   item.Quantity,
	})
	return &item, nil
}

// RemoveOne takes a single unit off a line, deleting the line when it was
// the last unit.
func (s *CartService) RemoveOne(ctx context.Context, userID string, itemID uint) (*models.CartItem, bool, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	item, err := s.Repo.GetCartItem(ctx, itemID, cart.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("cart item: %w", ErrNotFound)
		}
		return nil, false, err
	}

	if item.Quantity > 1 {
		item.Quantity--
		if err := s.Repo.SaveCartItem(ctx, item); err != nil {
			return nil, false, err
		}
		if err := s.Repo.AdjustCartTotal(ctx, cart.ID, -item.Price); err != nil {
			return nil, false, err
		}
		s.publish(ctx, userID, map[string]any{
			"type":         "cart_item_decremented",
			"user_id":      userID,
			"item_id":      item.ID,
			"new_quantity": item.Quantity,
		})
		return item, false, nil
	}

	if err := s.Repo.DeleteCartItem(ctx, itemID, cart.ID); err != nil {
		return nil, false, err
	}
	if err := s.Repo.AdjustCartTotal(ctx, cart.ID, -(item.Price + item.ShippingFee)); err != nil {
		return nil, false, err
	}
	s.publish(ctx, userID, map[string]any{
		"type":    "cart_item_deleted",
		"user_id": userID,
		"item_id": itemID,
	})
	return item, true, nil
}

// RemoveLine drops a whole line regardless of quantity.
func (s *CartService) RemoveLine(ctx context.Context, userID string, itemID uint) error {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		return err
	}

	item, err := s.Repo.GetCartItem(ctx, itemID, cart.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart item: %w", ErrNotFound)
		}
		return err
	}

	if err := s.Repo.DeleteCartItem(ctx, itemID, cart.ID); err != nil {
		return err
	}
	delta := -(item.Price*float64(item.Quantity) + item.ShippingFee)
	if err := s.Repo.AdjustCartTotal(ctx, cart.ID, delta); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "cart_item_deleted",
		"user_id": userID,
		"item_id": itemID,
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pubCtx, events.TopicCarts, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}
