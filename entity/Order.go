package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one purchased product. Price is copied from the product when the
// order is placed; only IsCancelled changes afterwards.
type Order struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"-"`
	User   User `json:"-"`

	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `json:"product"` // preload เฉพาะตอนต้องการ product detail

	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	PaymentMode PaymentMode     `gorm:"size:10;not null" json:"payment_mode"`
	IsCancelled bool            `gorm:"not null;default:false;index" json:"is_cancelled"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
