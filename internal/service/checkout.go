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

type CheckoutService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// Checkout turns the user's cart into an order: stock is reserved per line,
// prices and names are snapshotted onto order items, and the cart is emptied.
// Everything runs in one transaction.
func (s *CheckoutService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = s.Repo.WithTx(ctx, func(r *repo.GormRepo) error {
		locked, err := r.GetCartForUpdate(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(locked.Items) == 0 {
			return ErrEmptyCart
		}

		order = models.Order{
			ID:        uuid.New(),
			UserID:    userID,
			Total:     locked.Total,
			Status:    "new",
			CouponID:  locked.CouponID,
			CreatedAt: time.Now().Unix(),
		}
		if err := r.CreateOrder(ctx, &order); err != nil {
			return err
		}

		for _, item := range locked.Items {
			if err := r.ReserveStock(ctx, item.VariantID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%s: %w", item.Name, ErrOutOfStock)
				}
				return err
			}
			oi := models.OrderItem{
				OrderID:   order.ID,
				StoreID:   item.StoreID,
				VariantID: item.VariantID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			}
			if err := r.CreateOrderItem(ctx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		return r.ClearCart(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":     "order_created",
		"user_id":  userID,
		"order_id": order.ID,
		"total":    order.Total,
	})
	return &order, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, id uuid.UUID, userID string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order: %w", ErrNotFound)
	}
	return order, err
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

func (s *CheckoutService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pubCtx, events.TopicOrders, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}
