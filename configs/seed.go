package configs

import (
	"context"
	"fmt"

	"storefront/entity"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var sampleCatalog = []entity.Product{
	{Title: "Classic Cotton T-Shirt", Price: decimal.RequireFromString("499.00"), Category: "clothing",
		Description: "Soft everyday crew neck tee.", ImageURL: "https://picsum.photos/seed/tee/600/600"},
	{Title: "Denim Jacket", Price: decimal.RequireFromString("1899.00"), Category: "clothing", IsSale: true,
		Description: "Stonewashed denim with brass buttons.", ImageURL: "https://picsum.photos/seed/denim/600/600"},
	{Title: "Wireless Earbuds", Price: decimal.RequireFromString("1299.00"), Category: "electronics",
		Description: "Bluetooth 5.3 earbuds with charging case.", ImageURL: "https://picsum.photos/seed/buds/600/600"},
	{Title: "Smart Watch", Price: decimal.RequireFromString("2999.00"), Category: "electronics", IsSale: true,
		Description: "Heart rate, sleep and step tracking.", ImageURL: "https://picsum.photos/seed/watch/600/600"},
	{Title: "Ceramic Coffee Mug", Price: decimal.RequireFromString("249.00"), Category: "home",
		Description: "350ml glazed stoneware mug.", ImageURL: "https://picsum.photos/seed/mug/600/600"},
	{Title: "Scented Candle", Price: decimal.RequireFromString("349.00"), Category: "home",
		Description: "Sandalwood soy wax candle.", ImageURL: "https://picsum.photos/seed/candle/600/600"},
}

// SeedProducts inserts the sample catalog when the products table is empty.
func SeedProducts(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info().Int64("products", count).Msg("catalog already seeded")
		return 0, nil
	}

	rows := make([]entity.Product, len(sampleCatalog))
	copy(rows, sampleCatalog)
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	log.Info().Int("products", len(rows)).Msg("catalog seeded")
	return len(rows), nil
}

// SeedStaff gets-or-creates the user with the given mobile and marks it staff.
func SeedStaff(ctx context.Context, db *gorm.DB, mobile string) (*entity.User, error) {
	var u entity.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := entity.User{Mobile: mobile, FullName: "Staff", IsActive: true}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mobile"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.User{}).Where("mobile = ?", mobile).
			Updates(map[string]any{"is_staff": true, "is_active": true}).Error; err != nil {
			return err
		}
		return tx.Where("mobile = ?", mobile).First(&u).Error
	})
	if err != nil {
		return nil, fmt.Errorf("seed staff %s: %w", mobile, err)
	}
	log.Info().Str("mobile", mobile).Uint("userId", u.ID).Msg("staff user ready")
	return &u, nil
}
