package models

import "gorm.io/gorm"

type Quote struct {
	gorm.Model
	UserID *uint  `gorm:"index"` // nil for the built-in seed set
	Text   string `gorm:"not null"`
	Author string
	Custom bool `gorm:"default:false"`
}
