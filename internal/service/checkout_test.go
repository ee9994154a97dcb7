package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/marketsquare/storefront/internal/events"
	"github.com/marketsquare/storefront/internal/models"
)

func TestCheckoutSnapshotsAndClearsCart(t *testing.T) {
	r := initTestRepo(t)
	carts := &CartService{Repo: r, Events: events.Nop{}}
	svc := &CheckoutService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 5, 3)

	_, err := carts.AddItem(context.Background(), "user_1", variant.ID, 2)
	require.NoError(t, err)

	order, err := svc.Checkout(context.Background(), "user_1")
	require.NoError(t, err)
	require.Equal(t, "new", order.Status)
	require.InDelta(t, 27, order.Total, 1e-9)
	require.Len(t, order.Items, 1)
	require.Equal(t, variant.ID, order.Items[0].VariantID)
	require.Equal(t, uint(2), order.Items[0].Quantity)
	require.InDelta(t, 12, order.Items[0].Price, 1e-9)

	// Stock was reserved.
	fresh, err := r.GetVariant(context.Background(), variant.ID)
	require.NoError(t, err)
	require.Equal(t, uint(3), fresh.Quantity)

	// Cart is back to empty.
	cart, err := carts.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.InDelta(t, 0, cart.Total, 1e-9)
	require.Nil(t, cart.CouponID)
}

func TestCheckoutCarriesCoupon(t *testing.T) {
	r := initTestRepo(t)
	carts := &CartService{Repo: r, Events: events.Nop{}}
	coupons := &CouponService{Repo: r, Events: events.Nop{}}
	svc := &CheckoutService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 10, 10, 0)
	coupon := seedCoupon(t, r, store.ID, "SAVE10", 10,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	_, err := carts.AddItem(context.Background(), "user_1", variant.ID, 10)
	require.NoError(t, err)
	cart, err := carts.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	_, err = coupons.Apply(context.Background(), "SAVE10", cart.ID)
	require.NoError(t, err)

	order, err := svc.Checkout(context.Background(), "user_1")
	require.NoError(t, err)
	require.InDelta(t, 90, order.Total, 1e-9)
	require.NotNil(t, order.CouponID)
	require.Equal(t, coupon.ID, *order.CouponID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	r := initTestRepo(t)
	svc := &CheckoutService{Repo: r, Events: events.Nop{}}

	_, err := svc.Checkout(context.Background(), "user_1")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutOutOfStockRollsBack(t *testing.T) {
	r := initTestRepo(t)
	carts := &CartService{Repo: r, Events: events.Nop{}}
	svc := &CheckoutService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, scarce := seedProductWithVariant(t, r, store.ID, "Limited", 50, 1, 0)
	_, plenty := seedProductWithVariant(t, r, store.ID, "Common", 5, 100, 0)

	_, err := carts.AddItem(context.Background(), "user_1", plenty.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddItem(context.Background(), "user_1", scarce.ID, 2)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "user_1")
	require.ErrorIs(t, err, ErrOutOfStock)

	// Nothing sticks: no order, no stock movement, cart intact.
	var orders int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Equal(t, int64(0), orders)

	fresh, err := r.GetVariant(context.Background(), plenty.ID)
	require.NoError(t, err)
	require.Equal(t, uint(100), fresh.Quantity)

	cart, err := carts.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestGetOrderScopedToUser(t *testing.T) {
	r := initTestRepo(t)
	carts := &CartService{Repo: r, Events: events.Nop{}}
	svc := &CheckoutService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 5, 0)

	_, err := carts.AddItem(context.Background(), "user_1", variant.ID, 1)
	require.NoError(t, err)
	order, err := svc.Checkout(context.Background(), "user_1")
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), order.ID, "user_1")
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), order.ID, "user_2")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOrder(context.Background(), uuid.New(), "user_1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	r := initTestRepo(t)
	carts := &CartService{Repo: r, Events: events.Nop{}}
	svc := &CheckoutService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 10, 0)

	for range 2 {
		_, err := carts.AddItem(context.Background(), "user_1", variant.ID, 1)
		require.NoError(t, err)
		_, err = svc.Checkout(context.Background(), "user_1")
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders(context.Background(), "user_1")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	others, err := svc.ListOrders(context.Background(), "user_2")
	require.NoError(t, err)
	require.Empty(t, others)
}
