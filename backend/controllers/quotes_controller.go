package controllers

import (
	"strconv"
	"studyflow/backend/config"
	"studyflow/backend/models"
	"studyflow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuotesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuotesController(db *gorm.DB, cfg *config.Config) *QuotesController {
	return &QuotesController{DB: db, Cfg: cfg}
}

var defaultQuotes = []models.Quote{
	{Text: "Success is the sum of small efforts repeated day after day.", Author: "Robert Collier"},
	{Text: "Education is the most powerful weapon you can use to change the world.", Author: "Nelson Mandela"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
	{Text: "Knowledge is the only resource that grows when shared.", Author: "Unknown"},
	{Text: "Every day is a new chance to learn something incredible.", Author: "StudyFlow"},
	{Text: "Persistence is the road to success.", Author: "Charles Chaplin"},
	{Text: "You don't have to be perfect, you have to be persistent.", Author: "StudyFlow"},
	{Text: "Studying is investing in yourself. There is no better investment.", Author: "Benjamin Franklin"},
	{Text: "Discipline is the bridge between your goals and your achievements.", Author: "Jim Rohn"},
	{Text: "Believe in yourself. Every hour of study brings you closer to your dreams.", Author: "StudyFlow"},
	{Text: "The future belongs to those who prepare for it today.", Author: "Malcolm X"},
	{Text: "Great achievements start with small daily steps.", Author: "StudyFlow"},
	{Text: "A mind that opens to a new idea never returns to its original size.", Author: "Albert Einstein"},
	{Text: "Your dedication today is your success tomorrow.", Author: "StudyFlow"},
	{Text: "It is never too late to be what you might have been.", Author: "George Eliot"},
}

// GetQuotes returns the built-in quotes plus the user's custom ones,
// custom first. The seed set is inserted on the first read that finds
// the table empty.
func (qc *QuotesController) GetQuotes(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var seeded int64
	if err := qc.DB.Model(&models.Quote{}).Where("user_id IS NULL").Count(&seeded).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if seeded == 0 {
		rows := make([]models.Quote, len(defaultQuotes))
		copy(rows, defaultQuotes)
		if err := qc.DB.Create(&rows).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not seed quotes",
			})
		}
	}

	var quotes []models.Quote
	if err := qc.DB.Where("user_id IS NULL OR user_id = ?", userID).
		Order("custom DESC, created_at ASC").
		Find(&quotes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(quotes)
}

func (qc *QuotesController) CreateQuote(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	quote := models.Quote{
		UserID: &userID,
		Text:   input.Text,
		Author: input.Author,
		Custom: true,
	}

	if err := qc.DB.Create(&quote).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create quote",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(quote)
}

func (qc *QuotesController) UpdateQuote(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quoteID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quote ID",
		})
	}

	// Only the user's own custom quotes can change
	var quote models.Quote
	if err := qc.DB.Where("id = ? AND user_id = ? AND custom = true", quoteID, userID).First(&quote).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	var input struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Text != "" {
		quote.Text = input.Text
	}
	if input.Author != "" {
		quote.Author = input.Author
	}

	if err := qc.DB.Save(&quote).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update quote",
		})
	}

	return c.JSON(quote)
}

func (qc *QuotesController) DeleteQuote(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	quoteID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quote ID",
		})
	}

	result := qc.DB.Where("id = ? AND user_id = ? AND custom = true", quoteID, userID).Delete(&models.Quote{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete quote",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
