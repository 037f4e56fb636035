package models

import (
	"time"

	"gorm.io/gorm"
)

// ApprovedEmail is the sign-in allow-list. An email must be approved
// before first sign-in creates a User; the role recorded here becomes
// the user's role. Records are write-once: no update or delete path.
type ApprovedEmail struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Role      string         `gorm:"not null" json:"role"` // "admin" or "customer"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ApprovedEmail model
func (ApprovedEmail) TableName() string {
	return "approved_emails"
}
