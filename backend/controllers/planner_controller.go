package controllers

import (
	"errors"
	"strconv"
	"studyflow/backend/config"
	"studyflow/backend/models"
	"studyflow/backend/progress"
	"studyflow/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PlannerController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPlannerController(db *gorm.DB, cfg *config.Config) *PlannerController {
	return &PlannerController{DB: db, Cfg: cfg}
}

// GetBlocks godoc
// @Summary Get planner blocks
// @Description Returns the user's study blocks, optionally limited to a date range
// @Tags planner
// @Accept json
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} models.StudyBlock
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /planner [get]
func (pc *PlannerController) GetBlocks(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	query := pc.DB.Where("user_id = ?", userID)
	start := c.Query("start")
	end := c.Query("end")
	if start != "" && end != "" {
		query = query.Where("date BETWEEN ? AND ?", start, end)
	}

	var blocks []models.StudyBlock
	if err := query.Order("date ASC").Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(blocks)
}

func (pc *PlannerController) CreateBlock(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		SubjectID       uint   `json:"subject_id"`
		Title           string `json:"title"`
		Date            string `json:"date"`
		DurationMinutes int    `json:"duration_minutes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Title == "" || input.SubjectID == 0 || input.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title, subject_id and a positive duration are required",
		})
	}
	if _, err := time.Parse(progress.DateLayout, input.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date must be YYYY-MM-DD",
		})
	}

	block := models.StudyBlock{
		UserID:          userID,
		SubjectID:       input.SubjectID,
		Title:           input.Title,
		Date:            input.Date,
		DurationMinutes: input.DurationMinutes,
	}

	if err := pc.DB.Create(&block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create study block",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(block)
}

func (pc *PlannerController) UpdateBlock(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	blockID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid block ID",
		})
	}

	var block models.StudyBlock
	if err := pc.DB.Where("id = ? AND user_id = ?", blockID, userID).First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Study block not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var input struct {
		Title           string `json:"title"`
		Date            string `json:"date"`
		DurationMinutes int    `json:"duration_minutes"`
		Completed       *bool  `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != "" {
		block.Title = input.Title
	}
	if input.Date != "" {
		if _, err := time.Parse(progress.DateLayout, input.Date); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Date must be YYYY-MM-DD",
			})
		}
		block.Date = input.Date
	}
	if input.DurationMinutes > 0 {
		block.DurationMinutes = input.DurationMinutes
	}
	if input.Completed != nil {
		block.Completed = *input.Completed
	}

	if err := pc.DB.Save(&block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update study block",
		})
	}

	return c.JSON(block)
}

func (pc *PlannerController) DeleteBlock(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	blockID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid block ID",
		})
	}

	result := pc.DB.Where("id = ? AND user_id = ?", blockID, userID).Delete(&models.StudyBlock{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete study block",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Study block not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
