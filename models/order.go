package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. An order starts Paid; admins may set any status,
// riders only Delivered or Undelivered on their own orders.
const (
	StatusPaid        = "Paid"
	StatusShipped     = "Shipped"
	StatusDelivered   = "Delivered"
	StatusUndelivered = "Undelivered"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{StatusPaid, StatusShipped, StatusDelivered, StatusUndelivered}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// OrderItem is a single line of an order: a product variant snapshot
// taken at checkout. Price is the unit price at order time.
type OrderItem struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Size      string  `json:"size" binding:"required"`
	Color     string  `json:"color" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Quantity  int     `json:"quantity"`

	// Product is filled in by handlers that return populated orders.
	Product *Product `gorm:"-" json:"product,omitempty"`
}

// Order represents a customer order. Items are stored as a JSON column
// (a snapshot, not a join table); orders are never deleted.
type Order struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items      []OrderItem    `gorm:"serializer:json" json:"items"`
	TotalPrice float64        `gorm:"not null" json:"total_price"`
	Status     string         `gorm:"not null;default:'Paid'" json:"status"`
	RiderID    *uint          `gorm:"index" json:"rider_id"`
	Rider      *Rider         `gorm:"foreignKey:RiderID" json:"rider,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
