package models

import (
	"time"

	"gorm.io/datatypes"
)

// FraudLog is an informational side-effect record written for any request that
// scores above zero, whether or not it was blocked. OrderID stays null when the
// request was rejected before an order existed.
type FraudLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   *uint          `json:"order_id"`
	IPAddress string         `json:"ip_address"`
	RiskScore int            `gorm:"not null" json:"risk_score"`
	Reasons   datatypes.JSON `json:"reasons"`
	CreatedAt time.Time      `json:"created_at"`
}
