package repository

import (
	"context"

	"storefront/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// คืนรายการในตะกร้าของ user พร้อมข้อมูลสินค้า (ว่างก็คืน slice ว่าง ไม่ error)
func (r *CartRepository) ListForUser(ctx context.Context, userID uint) ([]entity.CartLine, error) {
	lines := []entity.CartLine{}
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&lines).Error
	return lines, err
}

// LockForCheckout reads the user's lines inside tx, taking row locks where the
// dialect supports them (sqlite ignores the clause and locks the whole database).
func (r *CartRepository) LockForCheckout(tx *gorm.DB, userID uint) ([]entity.CartLine, error) {
	var lines []entity.CartLine
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *CartRepository) FindForUser(ctx context.Context, userID, lineID uint) (*entity.CartLine, error) {
	return r.findForUser(r.DB.WithContext(ctx), userID, lineID)
}

func (r *CartRepository) findForUser(db *gorm.DB, userID, lineID uint) (*entity.CartLine, error) {
	var line entity.CartLine
	if err := db.Preload("Product").
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// UpsertLine adds qty to the (user, product) line in a single statement,
// creating the line if it does not exist yet. created reports which branch ran.
func (r *CartRepository) UpsertLine(tx *gorm.DB, userID, productID uint, qty int) (*entity.CartLine, bool, error) {
	row := entity.CartLine{UserID: userID, ProductID: productID, Quantity: qty}
	if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("cart_lines.quantity + ?", qty),
		}),
	}).Create(&row).Error; err != nil {
		return nil, false, err
	}

	var line entity.CartLine
	if err := tx.Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line).Error; err != nil {
		return nil, false, err
	}
	// an existing line held at least 1, so a merge always ends above qty
	return &line, line.Quantity == qty, nil
}

// Increment adds one to the line; 0 rows means the line is missing or not owned.
func (r *CartRepository) Increment(tx *gorm.DB, userID, lineID uint) (int64, error) {
	res := tx.Model(&entity.CartLine{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", gorm.Expr("quantity + ?", 1))
	return res.RowsAffected, res.Error
}

// Decrement subtracts one, deleting the line instead when it would drop to zero.
// found=false means the line is missing or not owned.
func (r *CartRepository) Decrement(tx *gorm.DB, userID, lineID uint) (removed, found bool, err error) {
	res := tx.Model(&entity.CartLine{}).
		Where("id = ? AND user_id = ? AND quantity > ?", lineID, userID, 1).
		Update("quantity", gorm.Expr("quantity - ?", 1))
	if res.Error != nil {
		return false, false, res.Error
	}
	if res.RowsAffected == 1 {
		return false, true, nil
	}

	res = tx.Where("id = ? AND user_id = ? AND quantity <= ?", lineID, userID, 1).
		Delete(&entity.CartLine{})
	if res.Error != nil {
		return false, false, res.Error
	}
	return res.RowsAffected == 1, res.RowsAffected == 1, nil
}

// SetQuantity overwrites the line's quantity. Only the owner's line matches.
func (r *CartRepository) SetQuantity(tx *gorm.DB, userID, lineID uint, qty int) error {
	return tx.Model(&entity.CartLine{}).
		Where("id = ? AND user_id = ? AND quantity >= ?", lineID, userID, 1).
		Update("quantity", qty).Error
}

func (r *CartRepository) FindInTx(tx *gorm.DB, userID, lineID uint) (*entity.CartLine, error) {
	return r.findForUser(tx, userID, lineID)
}

// ลบรายการเดียว
func (r *CartRepository) RemoveLine(ctx context.Context, userID, lineID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&entity.CartLine{})
	return res.RowsAffected, res.Error
}

// DeleteLines removes exactly the given lines of the user and reports how many went.
func (r *CartRepository) DeleteLines(tx *gorm.DB, userID uint, lineIDs []uint) (int64, error) {
	if len(lineIDs) == 0 {
		return 0, nil
	}
	res := tx.Where("user_id = ? AND id IN ?", userID, lineIDs).Delete(&entity.CartLine{})
	return res.RowsAffected, res.Error
}

func (r *CartRepository) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.CartLine{}).Error
}
