package models

import "time"

// Setting is one runtime configuration row. The settings package caches the
// whole table in process and is the only reader.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Group     string    `gorm:"column:setting_group;index" json:"group"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `json:"value"`
	Type      string    `gorm:"default:'text'" json:"type"` // text, password, boolean
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
