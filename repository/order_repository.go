package repository

import (
	"context"

	"storefront/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrders inserts all rows in one batch; IDs are filled in on return.
func (r *OrderRepository) CreateOrders(tx *gorm.DB, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&orders).Error
}

// GET /orders → รายการ order ของ user ใหม่สุดก่อน
func (r *OrderRepository) ListForUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	out := []entity.Order{}
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, err
}

// GET /orders/:id (เฉพาะเจ้าของออเดอร์)
func (r *OrderRepository) FindForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkCancelled flips is_cancelled only while it is still false (guarded update).
func (r *OrderRepository) MarkCancelled(ctx context.Context, userID, orderID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND user_id = ? AND is_cancelled = ?", orderID, userID, false).
		Update("is_cancelled", true)
	return res.RowsAffected, res.Error
}

// ---------------- Ranking ----------------

type ProductRank struct {
	ProductID     uint  `json:"product_id"`
	TotalQuantity int64 `json:"total_quantity"`
}

// RankProducts sums quantity of non-cancelled orders per product, highest first.
// Ties are broken by product id so the ranking is stable.
func (r *OrderRepository) RankProducts(ctx context.Context, limit int) ([]ProductRank, error) {
	var out []ProductRank
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("product_id, SUM(quantity) AS total_quantity").
		Where("is_cancelled = ?", false).
		Group("product_id").
		Having("SUM(quantity) > ?", 0).
		Order("total_quantity DESC").Order("product_id ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
