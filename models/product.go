package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	SKU         string    `json:"sku"`
	Description string    `gorm:"type:TEXT" json:"description"`

	BasePrice float64  `gorm:"not null" json:"base_price"`
	SalePrice *float64 `json:"sale_price"` // nil falls back to BasePrice at order time

	// TotalStock is the single source of truth for availability. It is only
	// decremented inside the checkout transaction; replenishment is an admin concern.
	TotalStock int    `gorm:"default:0" json:"total_stock"`
	Status     string `gorm:"default:'active'" json:"status"`
	Thumbnail  string `json:"thumbnail"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SellingPrice is the price snapshotted into order items: sale price when set,
// base price otherwise.
func (p *Product) SellingPrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.BasePrice
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
