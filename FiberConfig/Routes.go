package FiberConfig

import (
	"log"
	"os"

	"PalletTrack/Controllers"
	"PalletTrack/Models"
	"PalletTrack/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	employeeController := Controllers.NewEmployeeController(db)
	taskController := Controllers.NewTaskController(db)

	// API group
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)
	auth.Get("/me", middleware.Verify(""), authController.Me)

	// Employee directory, admin only
	employees := api.Group("/employees", middleware.Verify(Models.RoleAdmin))
	employees.Get("/", employeeController.GetEmployees)
	employees.Post("/", employeeController.CreateEmployee)

	// Task routes - export BEFORE the ID route to avoid conflicts
	tasks := api.Group("/tasks", middleware.Verify(""))
	tasks.Get("/export", middleware.Verify(Models.RoleAdmin), taskController.ExportTasks)
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", middleware.Verify(Models.RoleAdmin), taskController.CreateTask)
	tasks.Post("/:id/complete", taskController.CompleteTask)
}

// NewApp builds the configured fiber application. Kept separate from
// FiberConfig so tests can drive it through app.Test.
func NewApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))
	SetupRoutes(app, db)
	return app
}

func FiberConfig(db *gorm.DB) {
	log.Println("Server Up...")
	app := NewApp(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
