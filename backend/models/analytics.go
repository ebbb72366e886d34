package models

import "gorm.io/gorm"

// PlatformAnalytics is the nightly rollup row written by the scheduler,
// one per calendar day.
type PlatformAnalytics struct {
	gorm.Model
	Date                string `gorm:"uniqueIndex;size:10"`
	TotalUsers          int64
	ActiveUsers         int64
	TotalMinutesStudied int64
	TotalFlashcards     int64
	AvgAccuracy         float64
}
