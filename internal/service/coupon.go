package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/events"
	"github.com/marketsquare/storefront/internal/logging"
	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
)

type CouponService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Now    func() time.Time // tests pin the clock; nil means time.Now
}

func (s *CouponService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Apply attaches the coupon identified by code to the cart and recomputes
// its total. The cart row stays locked for the whole check-and-write, so two
// concurrent applications serialize and the loser fails on the
// already-applied check.
func (s *CouponService) Apply(ctx context.Context, code string, cartID uuid.UUID) (*models.Cart, error) {
	// Codes are unique per store only; the same code issued by several
	// stores resolves against the cart's contents below.
	candidates, err := s.Repo.GetCouponsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("coupon %q: %w", code, ErrNotFound)
	}

	// Window bounds are inclusive.
	now := s.now()
	live := candidates[:0:0]
	for _, c := range candidates {
		if now.Before(c.StartDate) || now.After(c.EndDate) {
			continue
		}
		live = append(live, c)
	}
	if len(live) == 0 {
		return nil, ErrExpired
	}

	var coupon models.Coupon
	err = s.Repo.WithTx(ctx, func(r *repo.GormRepo) error {
		cart, err := r.GetCartForUpdate(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart: %w", ErrNotFound)
			}
			return err
		}

		if cart.CouponID != nil {
			return ErrAlreadyApplied
		}

		perStore := make(map[uuid.UUID]float64, len(cart.Items))
		for _, item := range cart.Items {
			perStore[item.StoreID] += item.Price*float64(item.Quantity) + item.ShippingFee
		}

		// When several stores issued the code, the one with the largest
		// eligible value in the cart wins; store id breaks exact ties so
		// the pick does not depend on row order.
		found := false
		var best float64
		for _, c := range live {
			eligible, ok := perStore[c.StoreID]
			if !ok {
				continue
			}
			if !found || eligible > best ||
				(eligible == best && c.StoreID.String() < coupon.StoreID.String()) {
				coupon = c
				best = eligible
				found = true
			}
		}
		if !found {
			return ErrNoEligibleItems
		}

		discountAmount := best * float64(coupon.Discount) / 100

		// Delta subtraction from the cart's existing total, so fees or
		// adjustments already folded into it are preserved.
		return r.UpdateCart(ctx, cartID, map[string]any{
			"coupon_id": coupon.ID,
			"total":     cart.Total - discountAmount,
		})
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, cartID.String(), map[string]any{
		"type":      "coupon_applied",
		"cart_id":   cartID,
		"coupon_id": coupon.ID,
		"code":      coupon.Code,
		"total":     updated.Total,
	})
	return updated, nil
}

// NormalizeDiscount maps dashboard form input to the stored percentage.
// Non-numeric input and values outside [1,99] fall back to 1 rather than
// failing.
func NormalizeDiscount(raw any) int {
	var d int
	switch v := raw.(type) {
	case float64:
		d = int(v)
	case int:
		d = v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 1
		}
		d = n
	default:
		return 1
	}
	if d < 1 || d > 99 {
		return 1
	}
	return d
}

type CouponInput struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Code      string
	Discount  any
	StartDate time.Time
	EndDate   time.Time
}

// Upsert creates or replaces a coupon keyed by the client-supplied id.
func (s *CouponService) Upsert(ctx context.Context, in CouponInput) (*models.Coupon, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, fmt.Errorf("code is required: %w", ErrInvalidInput)
	}
	if in.ID == uuid.Nil {
		return nil, fmt.Errorf("coupon id is required: %w", ErrInvalidInput)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("end date precedes start date: %w", ErrInvalidInput)
	}

	// Ids are client-supplied and visible to shoppers, so an id belonging
	// to another store must not be re-parentable through this path.
	if existing, err := s.Repo.GetCouponByID(ctx, in.ID); err == nil {
		if existing.StoreID != in.StoreID {
			return nil, fmt.Errorf("coupon: %w", ErrNotFound)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inUse, err := s.Repo.CodeInUse(ctx, in.StoreID, code, in.ID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrDuplicateCode
	}

	coupon := &models.Coupon{
		ID:        in.ID,
		StoreID:   in.StoreID,
		Code:      code,
		Discount:  NormalizeDiscount(in.Discount),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if err := s.Repo.UpsertCoupon(ctx, coupon); err != nil {
		return nil, err
	}

	s.publish(ctx, in.StoreID.String(), map[string]any{
		"type":      "coupon_upserted",
		"coupon_id": coupon.ID,
		"store_id":  coupon.StoreID,
		"code":      coupon.Code,
	})
	return coupon, nil
}

func (s *CouponService) Get(ctx context.Context, id, storeID uuid.UUID) (*models.Coupon, error) {
	coupon, err := s.Repo.GetCoupon(ctx, id, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("coupon: %w", ErrNotFound)
	}
	return coupon, err
}

func (s *CouponService) List(ctx context.Context, storeID uuid.UUID) ([]models.Coupon, error) {
	return s.Repo.ListCoupons(ctx, storeID)
}

// Delete matches on the compound (id, storeID) key so a caller cannot remove
// another store's coupon by guessing ids.
func (s *CouponService) Delete(ctx context.Context, id, storeID uuid.UUID) error {
	if err := s.Repo.DeleteCoupon(ctx, id, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("coupon: %w", ErrNotFound)
		}
		return err
	}

	s.publish(ctx, storeID.String(), map[string]any{
		"type":      "coupon_deleted",
		"coupon_id": id,
		"store_id":  storeID,
	})
	return nil
}

func (s *CouponService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pubCtx, events.TopicCoupons, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}
