package progress

import (
	"studyflow/backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ref is a fixed reference date so the tests never touch the wall clock.
var ref = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return ref.AddDate(0, 0, offset).Format(DateLayout)
}

func rec(offset, minutes int) models.DailyProgress {
	return models.DailyProgress{UserID: 1, Date: day(offset), MinutesStudied: minutes}
}

func TestWeeklyHoursLengthAndOrder(t *testing.T) {
	weekly := WeeklyHours(nil, ref)

	assert.Len(t, weekly, 7)
	// Last entry is the reference day itself.
	assert.Equal(t, dayNames[int(ref.Weekday())], weekly[6].Day)
	// First entry is six days earlier.
	first := ref.AddDate(0, 0, -6)
	assert.Equal(t, dayNames[int(first.Weekday())], weekly[0].Day)
	for _, d := range weekly {
		assert.Equal(t, 0.0, d.Hours)
	}
}

func TestWeeklyHoursRounding(t *testing.T) {
	records := []models.DailyProgress{rec(0, 37)}

	weekly := WeeklyHours(records, ref)

	// 37/60 = 0.616..., rounded to one decimal.
	assert.Equal(t, 0.6, weekly[6].Hours)
}

func TestWeeklyHoursMissingDaysAreZero(t *testing.T) {
	records := []models.DailyProgress{rec(0, 120), rec(-2, 60)}

	weekly := WeeklyHours(records, ref)

	assert.Equal(t, 2.0, weekly[6].Hours)
	assert.Equal(t, 1.0, weekly[4].Hours)
	assert.Equal(t, 0.0, weekly[5].Hours)
}

func TestMonthlyTrendBuckets(t *testing.T) {
	// 60 minutes on the reference day (week 4) and 90 minutes 10 days
	// back (week 3). Weeks are non-overlapping 7-day windows ending at ref.
	records := []models.DailyProgress{rec(0, 60), rec(-10, 90)}

	trend := MonthlyTrend(records, ref)

	assert.Len(t, trend, 4)
	assert.Equal(t, "Week 1", trend[0].Week)
	assert.Equal(t, "Week 4", trend[3].Week)
	assert.Equal(t, 0.0, trend[0].Hours)
	assert.Equal(t, 0.0, trend[1].Hours)
	assert.Equal(t, 1.5, trend[2].Hours)
	assert.Equal(t, 1.0, trend[3].Hours)
}

func TestStreakNoRecords(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, ref))
}

func TestStreakContinuity(t *testing.T) {
	records := []models.DailyProgress{rec(0, 25), rec(-1, 50), rec(-2, 25)}

	assert.Equal(t, 3, Streak(records, ref))
}

func TestStreakBreaksAtFirstGap(t *testing.T) {
	// Today qualifies, yesterday does not, three days ago does: only
	// today counts.
	records := []models.DailyProgress{rec(0, 25), rec(-2, 0), rec(-3, 40)}

	assert.Equal(t, 1, Streak(records, ref))
}

func TestStreakGraceDay(t *testing.T) {
	// No activity today yet, but yesterday and the day before qualify:
	// the walk anchors on yesterday.
	records := []models.DailyProgress{rec(-1, 30), rec(-2, 30)}

	assert.Equal(t, 2, Streak(records, ref))
}

func TestStreakTwoMissedDays(t *testing.T) {
	// Neither today nor yesterday qualifies, even with older activity.
	records := []models.DailyProgress{rec(-2, 30), rec(-3, 30)}

	assert.Equal(t, 0, Streak(records, ref))
}

func TestStreakCappedAtOneYear(t *testing.T) {
	// 400 consecutive qualifying days: the backward walk stops at 365.
	records := make([]models.DailyProgress, 0, 400)
	for i := 0; i < 400; i++ {
		records = append(records, rec(-i, 30))
	}

	assert.Equal(t, maxStreakDays, Streak(records, ref))
}

func TestStreakZeroMinutesDoesNotQualify(t *testing.T) {
	// A row that only has flashcard reviews does not extend a streak.
	records := []models.DailyProgress{
		{UserID: 1, Date: day(0), FlashcardsReviewed: 5},
		rec(-1, 30),
	}

	assert.Equal(t, 1, Streak(records, ref))
}

func TestTodayProgressPlaceholder(t *testing.T) {
	today := TodayProgress(nil, 7, ref)

	assert.Equal(t, uint(7), today.UserID)
	assert.Equal(t, ref.Format(DateLayout), today.Date)
	assert.Zero(t, today.ID)
	assert.Zero(t, today.MinutesStudied)
}

func TestTodayProgressExistingRow(t *testing.T) {
	records := []models.DailyProgress{rec(-1, 10), rec(0, 42)}

	today := TodayProgress(records, 1, ref)

	assert.Equal(t, 42, today.MinutesStudied)
}

func TestComputeTotals(t *testing.T) {
	records := []models.DailyProgress{
		{UserID: 1, Date: day(0), MinutesStudied: 90, PomodoroSessions: 3, FlashcardsReviewed: 10, FlashcardsCorrect: 8},
		{UserID: 1, Date: day(-1), MinutesStudied: 45, PomodoroSessions: 1, FlashcardsReviewed: 5, FlashcardsCorrect: 4},
	}

	totals := ComputeTotals(records, 12)

	assert.Equal(t, 135, totals.Minutes)
	assert.Equal(t, 2.3, totals.Hours) // 135/60 = 2.25 -> 2.3
	assert.Equal(t, 4, totals.PomodoroSessions)
	assert.Equal(t, 15, totals.FlashcardsReviewed)
	assert.Equal(t, 12, totals.FlashcardsCorrect)
	assert.Equal(t, 12, totals.FlashcardsCreated)
	assert.Equal(t, 80, totals.AccuracyRate) // 12/15
}

func TestComputeTotalsAccuracyRounds(t *testing.T) {
	records := []models.DailyProgress{
		{UserID: 1, Date: day(0), FlashcardsReviewed: 15, FlashcardsCorrect: 13},
	}

	totals := ComputeTotals(records, 0)

	assert.Equal(t, 87, totals.AccuracyRate) // 13/15 = 86.6% -> 87
}

func TestComputeTotalsNoReviews(t *testing.T) {
	totals := ComputeTotals(nil, 0)

	assert.Equal(t, 0, totals.AccuracyRate)
}

func TestEvaluateAchievements(t *testing.T) {
	totals := Totals{
		Hours:             5,
		PomodoroSessions:  1,
		FlashcardsCreated: 10,
	}

	achievements := EvaluateAchievements(totals, 3)

	want := map[string]bool{
		"First session":         true,
		"10 flashcards created": true,
		"5 hours of study":      true,
		"3-day streak":          true,
		"80% accuracy":          false, // nothing reviewed yet
		"7-day streak":          false,
		"50 flashcards":         false,
		"20 hours of study":     false,
	}

	assert.Len(t, achievements, len(want))
	for _, a := range achievements {
		assert.Equal(t, want[a.Label], a.Achieved, a.Label)
	}
}

func TestEvaluateAchievementsAccuracyNeedsReviews(t *testing.T) {
	// 100% accuracy over zero reviews must not count.
	zeroReviews := EvaluateAchievements(Totals{AccuracyRate: 100}, 0)
	assert.False(t, zeroReviews[4].Achieved)

	withReviews := EvaluateAchievements(Totals{AccuracyRate: 85, FlashcardsReviewed: 20}, 0)
	assert.True(t, withReviews[4].Achieved)
}

func TestEvaluateAchievementsDeterministic(t *testing.T) {
	totals := Totals{Hours: 21, PomodoroSessions: 9, FlashcardsCreated: 55, FlashcardsReviewed: 100, AccuracyRate: 91}

	first := EvaluateAchievements(totals, 8)
	second := EvaluateAchievements(totals, 8)

	assert.Equal(t, first, second)
	for _, a := range first {
		assert.True(t, a.Achieved, a.Label)
	}
}
