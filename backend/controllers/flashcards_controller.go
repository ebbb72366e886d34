package controllers

import (
	"errors"
	"strconv"
	"studyflow/backend/ai"
	"studyflow/backend/config"
	"studyflow/backend/models"
	"studyflow/backend/progress"
	"studyflow/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FlashcardsController struct {
	DB  *gorm.DB
	Cfg *config.Config
	Agg *progress.Aggregator
}

func NewFlashcardsController(db *gorm.DB, cfg *config.Config) *FlashcardsController {
	return &FlashcardsController{DB: db, Cfg: cfg, Agg: progress.NewAggregator(db)}
}

func (fc *FlashcardsController) GetFlashcards(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	query := fc.DB.Where("user_id = ?", userID)
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}

	var flashcards []models.Flashcard
	if err := query.Order("created_at DESC").Find(&flashcards).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(flashcards)
}

func (fc *FlashcardsController) CreateFlashcard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		SubjectID  uint   `json:"subject_id"`
		Question   string `json:"question"`
		Answer     string `json:"answer"`
		Difficulty string `json:"difficulty"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.SubjectID == 0 || input.Question == "" || input.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subject_id, question and answer are required",
		})
	}

	flashcard := models.Flashcard{
		UserID:    userID,
		SubjectID: input.SubjectID,
		Question:  input.Question,
		Answer:    input.Answer,
	}
	if input.Difficulty != "" {
		flashcard.Difficulty = input.Difficulty
	}

	if err := fc.DB.Create(&flashcard).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create flashcard",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(flashcard)
}

func (fc *FlashcardsController) UpdateFlashcard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	cardID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid flashcard ID",
		})
	}

	var flashcard models.Flashcard
	if err := fc.DB.Where("id = ? AND user_id = ?", cardID, userID).First(&flashcard).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Flashcard not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var input struct {
		Question   string `json:"question"`
		Answer     string `json:"answer"`
		Difficulty string `json:"difficulty"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Question != "" {
		flashcard.Question = input.Question
	}
	if input.Answer != "" {
		flashcard.Answer = input.Answer
	}
	if input.Difficulty != "" {
		flashcard.Difficulty = input.Difficulty
	}

	if err := fc.DB.Save(&flashcard).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update flashcard",
		})
	}

	return c.JSON(flashcard)
}

func (fc *FlashcardsController) DeleteFlashcard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	cardID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid flashcard ID",
		})
	}

	result := fc.DB.Where("id = ? AND user_id = ?", cardID, userID).Delete(&models.Flashcard{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete flashcard",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Flashcard not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ReviewFlashcard godoc
// @Summary Record a flashcard review
// @Description Records a review answer on the card and in today's progress
// @Tags flashcards
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Review outcome"
// @Success 200 {object} models.Flashcard
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /flashcards/{id}/review [post]
func (fc *FlashcardsController) ReviewFlashcard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	cardID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid flashcard ID",
		})
	}

	var input struct {
		Correct bool `json:"correct"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var flashcard models.Flashcard
	if err := fc.DB.Where("id = ? AND user_id = ?", cardID, userID).First(&flashcard).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Flashcard not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	updates := map[string]interface{}{
		"times_reviewed": gorm.Expr("times_reviewed + 1"),
	}
	if input.Correct {
		updates["correct"] = gorm.Expr("correct + 1")
	} else {
		updates["wrong"] = gorm.Expr("wrong + 1")
	}
	if err := fc.DB.Model(&flashcard).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record review",
		})
	}

	today := time.Now().Format(progress.DateLayout)
	if err := fc.Agg.RecordFlashcardReview(userID, today, input.Correct); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update daily progress",
		})
	}

	// Reload so the response carries the incremented counters
	fc.DB.First(&flashcard, flashcard.ID)
	return c.JSON(flashcard)
}

// GenerateFlashcards godoc
// @Summary Generate flashcards with AI
// @Description Generates flashcards for a subject and stores them
// @Tags flashcards
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Generation parameters"
// @Success 201 {array} models.Flashcard
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /flashcards/generate [post]
func (fc *FlashcardsController) GenerateFlashcards(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		SubjectID  uint   `json:"subject_id"`
		Topic      string `json:"topic"`
		Count      int    `json:"count"`
		Difficulty string `json:"difficulty"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.SubjectID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subject_id is required",
		})
	}

	var subject models.Subject
	if err := fc.DB.Where("id = ? AND user_id = ?", input.SubjectID, userID).First(&subject).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subject not found",
		})
	}

	topic := input.Topic
	if topic == "" {
		topic = subject.Name
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	client, err := ai.New(fc.Cfg.OpenAIKey)
	if err != nil {
		return utils.BadGateway(c, "Flashcard generation is not configured")
	}

	cards, err := client.GenerateFlashcards(topic, input.Count, difficulty)
	if err != nil {
		return utils.BadGateway(c, "Flashcard generation failed")
	}

	flashcards := make([]models.Flashcard, 0, len(cards))
	for _, card := range cards {
		flashcards = append(flashcards, models.Flashcard{
			UserID:      userID,
			SubjectID:   subject.ID,
			Question:    card.Question,
			Answer:      card.Answer,
			Difficulty:  difficulty,
			AIGenerated: true,
		})
	}

	if err := fc.DB.Create(&flashcards).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save generated flashcards",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(flashcards)
}
