package models

import "gorm.io/gorm"

// DailyProgress holds one row per user per calendar day. Counters only
// grow; a missing row means zero activity for that day.
type DailyProgress struct {
	gorm.Model
	UserID             uint   `gorm:"uniqueIndex:idx_user_date;not null" json:"user_id"`
	Date               string `gorm:"uniqueIndex:idx_user_date;size:10;not null" json:"date"` // YYYY-MM-DD
	MinutesStudied     int    `gorm:"default:0" json:"minutes_studied"`
	PomodoroSessions   int    `gorm:"default:0" json:"pomodoro_sessions"`
	FlashcardsReviewed int    `gorm:"default:0" json:"flashcards_reviewed"`
	FlashcardsCorrect  int    `gorm:"default:0" json:"flashcards_correct"`
}
