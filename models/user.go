package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a session credential can carry. Admin and customer map to User
// records; rider maps to the separate Rider registry.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleRider    = "rider"
)

// Address is the customer's delivery address, filled in before checkout.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// User represents an account in the system (admin or customer).
// Users are created lazily on first sign-in with an approved email;
// the role is fixed from the approval record at that moment.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Role      string         `gorm:"not null;default:'customer'" json:"role"` // "admin" or "customer"
	Address   Address        `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Phone     string         `json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
