package models

import (
	"time"

	"gorm.io/gorm"
)

// Product categories sold by the store.
const (
	CategoryFan = "Fan"
	CategoryAC  = "AC"
)

// ColorImage maps a product color to its display image.
type ColorImage struct {
	Color    string `json:"color" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

// Variant is a purchasable (size, color, price) combination. Variants
// are expected to reference declared sizes/colors but this is not
// enforced at write time.
type Variant struct {
	Size  string  `json:"size" binding:"required"`
	Color string  `json:"color" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

// Product represents a catalog item. The list fields keep the
// document shape of the catalog and are stored as JSON columns.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Category      string         `gorm:"not null" json:"category"` // "Fan" or "AC"
	Description   string         `json:"description"`
	ImagesByColor []ColorImage   `gorm:"serializer:json" json:"imagesByColor"`
	Sizes         []string       `gorm:"serializer:json" json:"sizes"`
	Colors        []string       `gorm:"serializer:json" json:"colors"`
	Variants      []Variant      `gorm:"serializer:json" json:"variants"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
