package entity

import "time"

// CartLine is one product in a user's cart. (user_id, product_id) is unique:
// adding the same product again bumps Quantity instead of inserting a row.
type CartLine struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_cart_lines_user_product" json:"-"`
	User   User `json:"-"`

	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_lines_user_product" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
