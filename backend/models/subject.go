package models

import "gorm.io/gorm"

type Subject struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Description string
	Color       string `gorm:"default:#8b5cf6"` // hex color shown in the UI
}
