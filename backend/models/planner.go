package models

import "gorm.io/gorm"

type StudyBlock struct {
	gorm.Model
	UserID          uint   `gorm:"index;not null"`
	SubjectID       uint   `gorm:"index;not null"`
	Title           string `gorm:"not null"`
	Date            string `gorm:"size:10;index;not null"` // YYYY-MM-DD
	DurationMinutes int    `gorm:"not null"`
	Completed       bool   `gorm:"default:false"`
}
