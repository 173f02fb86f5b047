package models

import "time"

type Coupon struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Code       string     `gorm:"uniqueIndex;not null" json:"code"`
	Type       string     `gorm:"not null" json:"type"` // fixed, percent
	Value      float64    `gorm:"not null" json:"value"`
	MinSpend   *float64   `json:"min_spend"`
	ExpiresAt  *time.Time `json:"expires_at"`
	UsageLimit *int       `json:"usage_limit"`
	UsedCount  int        `gorm:"default:0" json:"used_count"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
