package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:100;index" json:"category"`
	ImageURL    string          `gorm:"size:500" json:"image_url"`
	Sold        bool            `gorm:"not null;default:false" json:"sold"`
	IsSale      bool            `gorm:"not null;default:false" json:"is_sale"`
	DateOfSale  *time.Time      `gorm:"type:date" json:"date_of_sale"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
