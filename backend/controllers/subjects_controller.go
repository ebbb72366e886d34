package controllers

import (
	"errors"
	"strconv"
	"studyflow/backend/config"
	"studyflow/backend/models"
	"studyflow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubjectsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubjectsController(db *gorm.DB, cfg *config.Config) *SubjectsController {
	return &SubjectsController{DB: db, Cfg: cfg}
}

func (sc *SubjectsController) GetSubjects(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var subjects []models.Subject
	if err := sc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subjects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var result []fiber.Map
	for _, subject := range subjects {
		var flashcards int64
		sc.DB.Model(&models.Flashcard{}).Where("subject_id = ?", subject.ID).Count(&flashcards)
		var notes int64
		sc.DB.Model(&models.Note{}).Where("subject_id = ?", subject.ID).Count(&notes)

		result = append(result, fiber.Map{
			"id":          subject.ID,
			"name":        subject.Name,
			"description": subject.Description,
			"color":       subject.Color,
			"created_at":  subject.CreatedAt,
			"flashcards":  flashcards,
			"notes":       notes,
		})
	}

	return c.JSON(result)
}

func (sc *SubjectsController) CreateSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	subject := models.Subject{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
	}
	if input.Color != "" {
		subject.Color = input.Color
	}

	if err := sc.DB.Create(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create subject",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(subject)
}

func (sc *SubjectsController) UpdateSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subject ID",
		})
	}

	var subject models.Subject
	if err := sc.DB.Where("id = ? AND user_id = ?", subjectID, userID).First(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Subject not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var input struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Color       string  `json:"color"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != "" {
		subject.Name = input.Name
	}
	if input.Description != nil {
		subject.Description = *input.Description
	}
	if input.Color != "" {
		subject.Color = input.Color
	}

	if err := sc.DB.Save(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update subject",
		})
	}

	return c.JSON(subject)
}

// DeleteSubject removes the subject and everything attached to it
// (flashcards, notes, planner blocks) in one transaction.
func (sc *SubjectsController) DeleteSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subject ID",
		})
	}

	var subject models.Subject
	if err := sc.DB.Where("id = ? AND user_id = ?", subjectID, userID).First(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Subject not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ? AND user_id = ?", subjectID, userID).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ? AND user_id = ?", subjectID, userID).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ? AND user_id = ?", subjectID, userID).Delete(&models.StudyBlock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&subject).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete subject",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
