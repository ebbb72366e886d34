package models

import (
	"time"

	"gorm.io/gorm"
)

type PomodoroSession struct {
	gorm.Model
	UserID          uint   `gorm:"index;not null"`
	SubjectID       *uint  `gorm:"index"` // nil for sessions without a subject
	DurationMinutes int    `gorm:"not null"`
	Kind            string `gorm:"default:focus"` // focus, short_break, long_break
	StartedAt       time.Time
}
