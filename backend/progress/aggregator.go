package progress

import (
	"studyflow/backend/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateLayout is the canonical YYYY-MM-DD form used as the per-day key.
const DateLayout = "2006-01-02"

// Aggregator owns the daily_progresses stream: two accumulating writes
// and a snapshot read the pure view functions work from.
type Aggregator struct {
	DB *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{DB: db}
}

// RecordFocusSession adds a completed focus session to the user's row for
// the given date, creating the row if absent. The increment happens in a
// single upsert so two concurrent writes cannot lose an update.
func (a *Aggregator) RecordFocusSession(userID uint, date string, minutes int) error {
	row := models.DailyProgress{
		UserID:           userID,
		Date:             date,
		MinutesStudied:   minutes,
		PomodoroSessions: 1,
	}
	return a.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"minutes_studied":   gorm.Expr("daily_progresses.minutes_studied + EXCLUDED.minutes_studied"),
			"pomodoro_sessions": gorm.Expr("daily_progresses.pomodoro_sessions + EXCLUDED.pomodoro_sessions"),
			"updated_at":        time.Now(),
		}),
	}).Create(&row).Error
}

// RecordFlashcardReview adds one review answer to the user's row for the
// given date, creating the row if absent.
func (a *Aggregator) RecordFlashcardReview(userID uint, date string, correct bool) error {
	row := models.DailyProgress{
		UserID:             userID,
		Date:               date,
		FlashcardsReviewed: 1,
	}
	if correct {
		row.FlashcardsCorrect = 1
	}
	return a.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"flashcards_reviewed": gorm.Expr("daily_progresses.flashcards_reviewed + EXCLUDED.flashcards_reviewed"),
			"flashcards_correct":  gorm.Expr("daily_progresses.flashcards_correct + EXCLUDED.flashcards_correct"),
			"updated_at":          time.Now(),
		}),
	}).Create(&row).Error
}

// Snapshot loads every daily row for the user, newest first. A store
// error is returned as-is; an empty result is a valid empty snapshot.
func (a *Aggregator) Snapshot(userID uint) ([]models.DailyProgress, error) {
	var records []models.DailyProgress
	if err := a.DB.Where("user_id = ?", userID).Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
