package routes

import (
	"studyflow/backend/config"
	"studyflow/backend/controllers"
	"studyflow/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Subjects routes
	subjectsController := controllers.NewSubjectsController(db, cfg)
	subjects := app.Group("/api/subjects", authMiddleware)
	subjects.Get("/", subjectsController.GetSubjects)
	subjects.Post("/", subjectsController.CreateSubject)
	subjects.Put("/:id", subjectsController.UpdateSubject)
	subjects.Delete("/:id", subjectsController.DeleteSubject)

	// Flashcards routes
	flashcardsController := controllers.NewFlashcardsController(db, cfg)
	flashcards := app.Group("/api/flashcards", authMiddleware)
	flashcards.Get("/", flashcardsController.GetFlashcards)
	flashcards.Post("/", flashcardsController.CreateFlashcard)
	flashcards.Post("/generate", flashcardsController.GenerateFlashcards)
	flashcards.Put("/:id", flashcardsController.UpdateFlashcard)
	flashcards.Delete("/:id", flashcardsController.DeleteFlashcard)
	flashcards.Post("/:id/review", flashcardsController.ReviewFlashcard)

	// Notes routes
	notesController := controllers.NewNotesController(db, cfg)
	notes := app.Group("/api/notes", authMiddleware)
	notes.Get("/", notesController.GetNotes)
	notes.Post("/", notesController.CreateNote)
	notes.Put("/:id", notesController.UpdateNote)
	notes.Delete("/:id", notesController.DeleteNote)

	// Planner routes
	plannerController := controllers.NewPlannerController(db, cfg)
	planner := app.Group("/api/planner", authMiddleware)
	planner.Get("/", plannerController.GetBlocks)
	planner.Post("/", plannerController.CreateBlock)
	planner.Put("/:id", plannerController.UpdateBlock)
	planner.Delete("/:id", plannerController.DeleteBlock)

	// Pomodoro routes
	pomodoroController := controllers.NewPomodoroController(db, cfg)
	pomodoro := app.Group("/api/pomodoro", authMiddleware)
	pomodoro.Get("/", pomodoroController.GetSessions)
	pomodoro.Post("/", pomodoroController.SaveSession)

	// Quotes routes
	quotesController := controllers.NewQuotesController(db, cfg)
	quotes := app.Group("/api/quotes", authMiddleware)
	quotes.Get("/", quotesController.GetQuotes)
	quotes.Post("/", quotesController.CreateQuote)
	quotes.Put("/:id", quotesController.UpdateQuote)
	quotes.Delete("/:id", quotesController.DeleteQuote)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)
	app.Get("/api/progress/today", authMiddleware, progressController.GetTodayProgress)
}
