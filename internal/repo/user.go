package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketsquare/storefront/internal/models"
)

func (r *GormRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUserByEmail keys on email: identity-provider updates may arrive with
// a new subject id for an address we already track. The reverse also
// happens — a known subject changing address — so a row matching the id is
// updated in place before the email-keyed upsert can collide with it.
func (r *GormRepo) UpsertUserByEmail(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]any{"email": user.Email, "name": user.Name, "role": user.Role})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "name", "role"}),
		}).Create(user).Error
	})
}

func (r *GormRepo) UpdateUserName(ctx context.Context, id, name string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("name", name).Error
}

func (r *GormRepo) DeleteUser(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}
