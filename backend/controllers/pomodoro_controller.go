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

type PomodoroController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Agg *progress.Aggregator
}

func NewPomodoroController(db *gorm.DB, cfg *config.Config) *PomodoroController {
	return &PomodoroController{DB: db, Cfg: cfg, Agg: progress.NewAggregator(db)}
}

// GetSessions godoc
// @Summary Get pomodoro sessions
// @Description Returns the user's sessions, newest first, with today's focus count
// @Tags pomodoro
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /pomodoro [get]
func (pc *PomodoroController) GetSessions(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var sessions []models.PomodoroSession
	if err := pc.DB.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(100).
		Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// Focus sessions completed today, using the same local calendar day
	// the daily progress rows are keyed by
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var todayFocus int64
	pc.DB.Model(&models.PomodoroSession{}).
		Where("user_id = ? AND kind = ? AND started_at >= ?", userID, "focus", todayStart).
		Count(&todayFocus)

	return c.JSON(fiber.Map{
		"sessions":    sessions,
		"today_focus": todayFocus,
	})
}

// SaveSession godoc
// @Summary Save a completed pomodoro session
// @Description Stores the session; focus sessions also accumulate into today's progress
// @Tags pomodoro
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Completed session"
// @Success 201 {object} models.PomodoroSession
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /pomodoro [post]
func (pc *PomodoroController) SaveSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		SubjectID       *uint  `json:"subject_id"`
		DurationMinutes int    `json:"duration_minutes"`
		Kind            string `json:"kind"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A positive duration is required",
		})
	}
	if input.Kind == "" {
		input.Kind = "focus"
	}

	session := models.PomodoroSession{
		UserID:          userID,
		SubjectID:       input.SubjectID,
		DurationMinutes: input.DurationMinutes,
		Kind:            input.Kind,
		StartedAt:       time.Now(),
	}

	if err := pc.DB.Create(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save session",
		})
	}

	// Breaks are stored but only focus time counts toward daily progress
	if input.Kind == "focus" {
		today := time.Now().Format(progress.DateLayout)
		if err := pc.Agg.RecordFocusSession(userID, today, input.DurationMinutes); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update daily progress",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}
