package repository

import (
	"context"

	"storefront/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreate inserts the user unless the mobile is taken, then reads the row back.
// fullName only applies to a newly created account.
func (r *UserRepository) GetOrCreate(tx *gorm.DB, mobile, fullName string) (*entity.User, bool, error) {
	row := entity.User{Mobile: mobile, FullName: fullName, IsActive: true}
	res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mobile"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}

	var user entity.User
	if err := tx.Where("mobile = ?", mobile).First(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, res.RowsAffected == 1, nil
}

func (r *UserRepository) MarkActive(tx *gorm.DB, userID uint) error {
	return tx.Model(&entity.User{}).Where("id = ?", userID).Update("is_active", true).Error
}

// อัปเดต user
func (r *UserRepository) Update(ctx context.Context, userID uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}
