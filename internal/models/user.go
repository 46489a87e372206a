package models

import "time"

// User is a staff account. Roles are the two flags the dashboards care
// about: superusers land on the admin dashboard, everyone else on the
// cashier one.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Email       string `gorm:"unique;not null;index"`
	Password    string `gorm:"not null"` // bcrypt hash
	IsSuperuser bool   `gorm:"not null;default:false"`
	IsStaff     bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
