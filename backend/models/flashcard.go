package models

import "gorm.io/gorm"

type Flashcard struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null"`
	SubjectID     uint   `gorm:"index;not null"`
	Question      string `gorm:"not null"`
	Answer        string `gorm:"not null"`
	Difficulty    string `gorm:"default:medium"` // easy, medium, hard
	AIGenerated   bool   `gorm:"default:false"`
	TimesReviewed int    `gorm:"default:0"`
	Correct       int    `gorm:"default:0"`
	Wrong         int    `gorm:"default:0"`
}
