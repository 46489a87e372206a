package models

import "time"

// Restock is one append-only ledger row per stock addition. Rows are
// deleted only together with their product; a deleted supplier leaves the
// row in place with SupplierID cleared (weak reference).
type Restock struct {
	ID            uint      `gorm:"primaryKey"`
	ProductID     uint      `gorm:"not null;index"`
	Product       Product   `gorm:"foreignKey:ProductID"`
	SupplierID    *uint     `gorm:"index"`
	Supplier      *Supplier `gorm:"foreignKey:SupplierID"`
	QuantityAdded int       `gorm:"not null"`
	RestockedAt   time.Time `gorm:"not null"`
}

func (Restock) TableName() string { return "restocks" }
