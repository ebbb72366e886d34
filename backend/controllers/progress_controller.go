package controllers

import (
	"studyflow/backend/config"
	"studyflow/backend/models"
	"studyflow/backend/progress"
	"studyflow/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Agg *progress.Aggregator
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg, Agg: progress.NewAggregator(db)}
}

// GetProgress godoc
// @Summary Get study progress
// @Description Returns today's record, weekly and monthly series, streak, totals and achievements
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	records, err := pc.Agg.Snapshot(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load progress",
		})
	}

	var flashcardsCreated int64
	if err := pc.DB.Model(&models.Flashcard{}).Where("user_id = ?", userID).Count(&flashcardsCreated).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// The reference date enters here, once; everything below is pure.
	now := time.Now()
	totals := progress.ComputeTotals(records, int(flashcardsCreated))
	streak := progress.Streak(records, now)

	return c.JSON(fiber.Map{
		"today":        progress.TodayProgress(records, userID, now),
		"weekly":       progress.WeeklyHours(records, now),
		"monthly":      progress.MonthlyTrend(records, now),
		"streak":       streak,
		"totals":       totals,
		"achievements": progress.EvaluateAchievements(totals, streak),
	})
}

// GetTodayProgress godoc
// @Summary Get today's progress record
// @Description Returns today's record, or a zero placeholder when nothing happened yet
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} models.DailyProgress
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/today [get]
func (pc *ProgressController) GetTodayProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	records, err := pc.Agg.Snapshot(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load progress",
		})
	}

	return c.JSON(progress.TodayProgress(records, userID, time.Now()))
}
