package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	// Payment statuses
	PaymentStatusPending   PaymentStatus = "pending"   // Payment not completed yet
	PaymentStatusPaid      PaymentStatus = "paid"      // Payment completed successfully
	PaymentStatusFailed    PaymentStatus = "failed"    // Payment attempt failed
	PaymentStatusCancelled PaymentStatus = "cancelled" // Customer abandoned the gateway page
)

// DefaultOrderStatuses is used when the order_statuses catalog table is empty.
var DefaultOrderStatuses = []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"}

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UUID        string `gorm:"type:VARCHAR(36);uniqueIndex;not null" json:"uuid"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      *uint  `json:"user_id"` // nullable: guest checkout
	User        *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Customer contact snapshot (guests have no user row but still need these)
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `gorm:"type:TEXT" json:"address"`
	Area    string `json:"area"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	SubTotal       float64 `gorm:"not null" json:"sub_total"`
	ShippingCharge float64 `gorm:"default:0" json:"shipping_charge"`
	GrandTotal     float64 `gorm:"not null" json:"grand_total"`

	PaymentMethod string        `json:"payment_method"` // sslcommerz, cod
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Status        string        `gorm:"default:'Pending'" json:"status"` // fulfillment status, catalog-driven

	// Ad attribution payload saved verbatim (fbp, fbc, gclid, ttclid)
	TrackingInfo datatypes.JSON `json:"tracking_info,omitempty"`
	UTMSource    string         `json:"utm_source,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `gorm:"type:TEXT" json:"user_agent,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OrderItem snapshots product name and price at order time so later catalog
// edits never alter historical orders.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
}

// OrderStatus is the extensible fulfillment status catalog managed from the admin panel.
type OrderStatus struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	ColorClass string    `gorm:"default:'text-slate-800'" json:"color_class"`
	CreatedAt  time.Time `json:"created_at"`
}
