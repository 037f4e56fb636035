package models

import (
	"time"

	"gorm.io/gorm"
)

// Rider is a delivery rider, registered by an admin. Riders sign in
// with the same identity provider as users but are never auto-created.
//
// OrderCount counts assignment calls, not currently held orders: it is
// bumped once per admin assignment and never decremented when an order
// is reassigned away.
type Rider struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	OrderCount int            `gorm:"not null;default:0" json:"order_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Rider model
func (Rider) TableName() string {
	return "riders"
}
