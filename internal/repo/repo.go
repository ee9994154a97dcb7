package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/marketsquare/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// WithTx runs fn against a transaction-scoped repo. Multi-step
// read-modify-write sequences go through here so row locks taken inside fn
// hold until commit.
func (r *GormRepo) WithTx(ctx context.Context, fn func(r *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Coupon{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}
