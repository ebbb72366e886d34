package scheduler

import (
	"log"
	"studyflow/backend/models"
	"time"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rollupTime is when the nightly analytics job runs (UTC), shortly after
// midnight so the previous day is complete.
const rollupTime = "00:10"

// Scheduler runs the nightly platform analytics rollup.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
	logger    *log.Logger
}

// New creates a scheduler instance
func New(db *gorm.DB, logger *log.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
		logger:    logger,
	}
}

// Start begins running all scheduled tasks in the background
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At(rollupTime).Do(s.collectDailyAnalytics)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// collectDailyAnalytics writes one PlatformAnalytics row for yesterday.
// Re-running the job for the same date overwrites the existing row.
func (s *Scheduler) collectDailyAnalytics() {
	date := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	if err := s.RollupDay(date); err != nil {
		s.logger.Printf("analytics rollup for %s failed: %v", date, err)
		return
	}
	s.logger.Printf("analytics rollup for %s done", date)
}

// RollupDay aggregates the given calendar day into platform_analytics.
func (s *Scheduler) RollupDay(date string) error {
	var totalUsers int64
	if err := s.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var activeUsers int64
	if err := s.db.Model(&models.DailyProgress{}).
		Where("date = ?", date).
		Distinct("user_id").
		Count(&activeUsers).Error; err != nil {
		return err
	}

	var totalFlashcards int64
	if err := s.db.Model(&models.Flashcard{}).Count(&totalFlashcards).Error; err != nil {
		return err
	}

	var day struct {
		Minutes  int64
		Reviewed int64
		Correct  int64
	}
	if err := s.db.Model(&models.DailyProgress{}).
		Where("date = ?", date).
		Select("COALESCE(SUM(minutes_studied),0) as minutes, COALESCE(SUM(flashcards_reviewed),0) as reviewed, COALESCE(SUM(flashcards_correct),0) as correct").
		Scan(&day).Error; err != nil {
		return err
	}

	var avgAccuracy float64
	if day.Reviewed > 0 {
		avgAccuracy = float64(day.Correct) / float64(day.Reviewed) * 100
	}

	row := models.PlatformAnalytics{
		Date:                date,
		TotalUsers:          totalUsers,
		ActiveUsers:         activeUsers,
		TotalMinutesStudied: day.Minutes,
		TotalFlashcards:     totalFlashcards,
		AvgAccuracy:         avgAccuracy,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		UpdateAll: true,
	}).Create(&row).Error
}
