package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
	"github.com/marketsquare/storefront/internal/repo"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))

	return repo.New(db)
}

func seedStore(t *testing.T, r *repo.GormRepo, name, ownerID string) *models.Store {
	t.Helper()

	store := &models.Store{ID: uuid.New(), Name: name, Slug: name, OwnerID: ownerID}
	require.NoError(t, r.DB.Create(store).Error)
	return store
}

func seedCoupon(t *testing.T, r *repo.GormRepo, storeID uuid.UUID, code string, discount int, start, end time.Time) *models.Coupon {
	t.Helper()

	coupon := &models.Coupon{
		ID:        uuid.New(),
		StoreID:   storeID,
		Code:      code,
		Discount:  discount,
		StartDate: start,
		EndDate:   end,
	}
	require.NoError(t, r.DB.Create(coupon).Error)
	return coupon
}

func seedCart(t *testing.T, r *repo.GormRepo, userID string, total float64, items ...models.CartItem) *models.Cart {
	t.Helper()

	cart := &models.Cart{ID: uuid.New(), UserID: userID, Total: total}
	require.NoError(t, r.DB.Create(cart).Error)
	for i := range items {
		items[i].CartID = cart.ID
		require.NoError(t, r.DB.Create(&items[i]).Error)
	}
	return cart
}

func seedProductWithVariant(t *testing.T, r *repo.GormRepo, storeID uuid.UUID, name string, price float64, stock uint, shipping float64) (*models.Product, *models.ProductVariant) {
	t.Helper()

	product := &models.Product{ID: uuid.New(), StoreID: storeID, Name: name, Slug: name}
	require.NoError(t, r.DB.Create(product).Error)
	variant := &models.ProductVariant{
		ID:          uuid.New(),
		ProductID:   product.ID,
		Title:       "default",
		Price:       price,
		Quantity:    stock,
		ShippingFee: shipping,
	}
	require.NoError(t, r.DB.Create(variant).Error)
	return product, variant
}
