package models

import (
	"time"

	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction records one payment attempt. TransactionID is the gateway-visible
// tran_id and equals the order number, so the asynchronous callbacks can locate
// both rows from the form payload alone.
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	UserID        *uint             `json:"user_id"`
	OrderID       uint              `gorm:"index" json:"order_id"`
	Order         *Order            `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	TransactionID string            `gorm:"uniqueIndex;not null" json:"transaction_id"`
	Gateway       string            `json:"gateway"` // sslcommerz, cod
	Amount        float64           `gorm:"not null" json:"amount"`
	Status        TransactionStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`

	// Raw gateway callback payload kept for audit.
	PaymentDetails datatypes.JSON `json:"payment_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
