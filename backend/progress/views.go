package progress

import (
	"fmt"
	"math"
	"studyflow/backend/models"
	"time"
)

// maxStreakDays bounds the backward walk; streaks longer than a year are
// reported as 365.
const maxStreakDays = 365

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayHours is one bar of the weekly chart.
type DayHours struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

// WeekHours is one bucket of the monthly trend.
type WeekHours struct {
	Week  string  `json:"week"`
	Hours float64 `json:"hours"`
}

// Totals are the all-time aggregates the achievements are checked against.
type Totals struct {
	Minutes            int     `json:"minutes"`
	Hours              float64 `json:"hours"`
	PomodoroSessions   int     `json:"pomodoro_sessions"`
	FlashcardsReviewed int     `json:"flashcards_reviewed"`
	FlashcardsCorrect  int     `json:"flashcards_correct"`
	FlashcardsCreated  int     `json:"flashcards_created"`
	AccuracyRate       int     `json:"accuracy_rate"` // integer percent, 0 when nothing reviewed
}

// Achievement is a labeled threshold check.
type Achievement struct {
	Label    string `json:"label"`
	Achieved bool   `json:"achieved"`
}

// All view functions below are pure over (records, ref): the reference
// date is passed in explicitly so callers own the clock.

// WeeklyHours returns exactly 7 entries for the calendar days ending at
// ref, oldest first. Days without a row count as zero.
func WeeklyHours(records []models.DailyProgress, ref time.Time) []DayHours {
	byDate := indexByDate(records)
	out := make([]DayHours, 0, 7)
	for i := 6; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		var hours float64
		if p, ok := byDate[day.Format(DateLayout)]; ok {
			hours = round1(float64(p.MinutesStudied) / 60)
		}
		out = append(out, DayHours{Day: dayNames[int(day.Weekday())], Hours: hours})
	}
	return out
}

// MonthlyTrend returns 4 buckets labeled "Week 1".."Week 4", oldest
// first, each summing a non-overlapping 7-day window ending at ref.
func MonthlyTrend(records []models.DailyProgress, ref time.Time) []WeekHours {
	byDate := indexByDate(records)
	out := make([]WeekHours, 0, 4)
	for w := 3; w >= 0; w-- {
		minutes := 0
		for d := 0; d < 7; d++ {
			day := ref.AddDate(0, 0, -(w*7 + d))
			if p, ok := byDate[day.Format(DateLayout)]; ok {
				minutes += p.MinutesStudied
			}
		}
		out = append(out, WeekHours{
			Week:  fmt.Sprintf("Week %d", 4-w),
			Hours: round1(float64(minutes) / 60),
		})
	}
	return out
}

// Streak counts consecutive qualifying days (minutes studied > 0)
// walking backward from ref. A ref day without activity does not break a
// streak that is still continuable: the walk anchors on ref-1 instead.
// When both ref and ref-1 fail to qualify the streak is 0.
func Streak(records []models.DailyProgress, ref time.Time) int {
	if len(records) == 0 {
		return 0
	}
	byDate := indexByDate(records)
	qualifies := func(t time.Time) bool {
		p, ok := byDate[t.Format(DateLayout)]
		return ok && p.MinutesStudied > 0
	}

	anchor := ref
	if !qualifies(anchor) {
		anchor = ref.AddDate(0, 0, -1)
		if !qualifies(anchor) {
			return 0
		}
	}

	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		if !qualifies(anchor) {
			break
		}
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}

// TodayProgress returns the row for the ref date, or an unpersisted
// zero-valued placeholder. Callers must not assume the result was ever
// written.
func TodayProgress(records []models.DailyProgress, userID uint, ref time.Time) models.DailyProgress {
	today := ref.Format(DateLayout)
	for _, p := range records {
		if p.Date == today {
			return p
		}
	}
	return models.DailyProgress{UserID: userID, Date: today}
}

// ComputeTotals sums the snapshot into the all-time aggregates.
// flashcardsCreated comes from the flashcards table, not the snapshot.
func ComputeTotals(records []models.DailyProgress, flashcardsCreated int) Totals {
	t := Totals{FlashcardsCreated: flashcardsCreated}
	for _, p := range records {
		t.Minutes += p.MinutesStudied
		t.PomodoroSessions += p.PomodoroSessions
		t.FlashcardsReviewed += p.FlashcardsReviewed
		t.FlashcardsCorrect += p.FlashcardsCorrect
	}
	t.Hours = round1(float64(t.Minutes) / 60)
	if t.FlashcardsReviewed > 0 {
		t.AccuracyRate = int(math.Round(float64(t.FlashcardsCorrect) / float64(t.FlashcardsReviewed) * 100))
	}
	return t
}

// EvaluateAchievements checks the fixed threshold table. The order of
// the returned list is stable.
func EvaluateAchievements(t Totals, streak int) []Achievement {
	return []Achievement{
		{Label: "First session", Achieved: t.PomodoroSessions > 0},
		{Label: "10 flashcards created", Achieved: t.FlashcardsCreated >= 10},
		{Label: "5 hours of study", Achieved: t.Hours >= 5},
		{Label: "3-day streak", Achieved: streak >= 3},
		{Label: "80% accuracy", Achieved: t.AccuracyRate >= 80 && t.FlashcardsReviewed > 0},
		{Label: "7-day streak", Achieved: streak >= 7},
		{Label: "50 flashcards", Achieved: t.FlashcardsCreated >= 50},
		{Label: "20 hours of study", Achieved: t.Hours >= 20},
	}
}

func indexByDate(records []models.DailyProgress) map[string]models.DailyProgress {
	byDate := make(map[string]models.DailyProgress, len(records))
	for _, p := range records {
		byDate[p.Date] = p
	}
	return byDate
}

func round1(h float64) float64 {
	return math.Round(h*10) / 10
}
