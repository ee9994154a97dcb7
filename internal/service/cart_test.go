package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/marketsquare/storefront/internal/events"
)

func TestAddItemChargesShippingOncePerLine(t *testing.T) {
	r := initTestRepo(t)
	svc := &CartService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 10, 3)

	item, err := svc.AddItem(context.Background(), "user_1", variant.ID, 2)
	require.NoError(t, err)
	require.Equal(t, uint(2), item.Quantity)

	cart, err := svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	// 2 * 12 + one shipping fee.
	require.InDelta(t, 27, cart.Total, 1e-9)

	// Same variant merges into the line and shipping is not charged again.
	item, err = svc.AddItem(context.Background(), "user_1", variant.ID, 1)
	require.NoError(t, err)
	require.Equal(t, uint(3), item.Quantity)

	cart, err = svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.InDelta(t, 39, cart.Total, 1e-9)
	require.Len(t, cart.Items, 1)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	r := initTestRepo(t)
	svc := &CartService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 10, 0)

	item, err := svc.AddItem(context.Background(), "user_1", variant.ID, 0)
	require.NoError(t, err)
	require.Equal(t, uint(1), item.Quantity)
}

func TestAddItemUnknownVariant(t *testing.T) {
	r := initTestRepo(t)
	svc := &CartService{Repo: r, Events: events.Nop{}}

	_, err := svc.AddItem(context.Background(), "user_1", uuid.New(), 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(context.Background(), "user_1", uuid.Nil, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddItemPreservesAppliedDiscount(t *testing.T) {
	r := initTestRepo(t)
	carts := &CartService{Repo: r, Events: events.Nop{}}
	coupons := &CouponService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 10, 10, 0)
	seedCoupon(t, r, store.ID, "SAVE10", 10,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	_, err := carts.AddItem(context.Background(), "user_1", variant.ID, 10)
	require.NoError(t, err)

	cart, err := carts.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.InDelta(t, 100, cart.Total, 1e-9)

	cart, err = coupons.Apply(context.Background(), "SAVE10", cart.ID)
	require.NoError(t, err)
	require.InDelta(t, 90, cart.Total, 1e-9)

	// Adding more moves the total by the line delta only; the $10 already
	// taken off stays taken off.
	_, err = carts.AddItem(context.Background(), "user_1", variant.ID, 1)
	require.NoError(t, err)

	cart, err = carts.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.InDelta(t, 100, cart.Total, 1e-9)
	require.NotNil(t, cart.CouponID)
}

func TestRemoveOneDecrementsThenDeletes(t *testing.T) {
	r := initTestRepo(t)
	svc := &CartService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 10, 3)

	_, err := svc.AddItem(context.Background(), "user_1", variant.ID, 2)
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	itemID := cart.Items[0].ID

	item, deleted, err := svc.RemoveOne(context.Background(), "user_1", itemID)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, uint(1), item.Quantity)

	cart, err = svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	// Shipping stays while the line exists.
	require.InDelta(t, 15, cart.Total, 1e-9)

	_, deleted, err = svc.RemoveOne(context.Background(), "user_1", itemID)
	require.NoError(t, err)
	require.True(t, deleted)

	cart, err = svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.InDelta(t, 0, cart.Total, 1e-9)
	require.Empty(t, cart.Items)
}

func TestRemoveLineDropsWholeLine(t *testing.T) {
	r := initTestRepo(t)
	svc := &CartService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variantA := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 10, 3)
	_, variantB := seedProductWithVariant(t, r, store.ID, "Hardcover", 30, 10, 5)

	_, err := svc.AddItem(context.Background(), "user_1", variantA.ID, 3)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "user_1", variantB.ID, 1)
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.InDelta(t, 74, cart.Total, 1e-9)

	var lineA uint
	for _, it := range cart.Items {
		if it.VariantID == variantA.ID {
			lineA = it.ID
		}
	}
	require.NotZero(t, lineA)

	require.NoError(t, svc.RemoveLine(context.Background(), "user_1", lineA))

	cart, err = svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	require.InDelta(t, 35, cart.Total, 1e-9)
	require.Len(t, cart.Items, 1)
}

func TestRemoveFromAnotherUsersCart(t *testing.T) {
	r := initTestRepo(t)
	svc := &CartService{Repo: r, Events: events.Nop{}}

	store := seedStore(t, r, "books", "owner_1")
	_, variant := seedProductWithVariant(t, r, store.ID, "Paperback", 12, 10, 0)

	_, err := svc.AddItem(context.Background(), "user_1", variant.ID, 1)
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "user_1")
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, _, err = svc.RemoveOne(context.Background(), "user_2", itemID)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.RemoveLine(context.Background(), "user_2", itemID)
	require.ErrorIs(t, err, ErrNotFound)
}
