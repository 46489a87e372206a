package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Category holds a copy of the category name
// taken at write time, not a foreign key: filtering and the category-delete
// cascade match on this label.
type Product struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:100;not null;index"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null;default:0"`
	Category  string          `gorm:"size:100;index"`
	ImagePath string          `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string { return "products" }
