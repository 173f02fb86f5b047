package models

import "time"

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `json:"name"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string  `json:"phone"`
	Role      string  `gorm:"default:'customer'" json:"role"`
	Orders    []Order `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
