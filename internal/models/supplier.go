package models

import "time"

// Supplier has no uniqueness constraint: two suppliers may share a name.
type Supplier struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Contact   string `gorm:"size:20"`
	Email     string `gorm:"size:100"`
	Address   string
	Company   string `gorm:"size:100"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (Supplier) TableName() string { return "suppliers" }
