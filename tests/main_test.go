package tests

import (
	"os"
	"studyflow/backend/config"
	"studyflow/backend/models"
	"studyflow/backend/routes"
	"studyflow/backend/utils"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	testUser models.User
	jwtToken string
)

func TestMain(m *testing.M) {
	// Setup
	setup()
	// Run tests
	code := m.Run()
	// Cleanup
	teardown()
	os.Exit(code)
}

func setup() {
	// Load test configuration
	cfg = &config.Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "postgres",
		DBName:     "studyflow_test",
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	// Initialize database
	var err error
	db, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	// Create test app
	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	// Create test user
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	testUser = models.User{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: string(hash),
	}
	db.Create(&testUser)
}

func teardown() {
	// Clean up test database
	db.Migrator().DropTable(
		&models.User{},
		&models.Subject{},
		&models.Flashcard{},
		&models.Note{},
		&models.StudyBlock{},
		&models.PomodoroSession{},
		&models.DailyProgress{},
		&models.Quote{},
		&models.PlatformAnalytics{},
	)
}
