package main

import (
	"log"
	"studyflow/backend/config"
	"studyflow/backend/middleware"
	"studyflow/backend/routes"
	"studyflow/backend/scheduler"
	"studyflow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg)

	// Nightly analytics rollup
	sched := scheduler.New(db, logger)
	sched.Start()
	defer sched.Stop()

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
