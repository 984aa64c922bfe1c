package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/docgestor/docgestor/internal/compliance"
	"github.com/docgestor/docgestor/internal/config"
	"github.com/docgestor/docgestor/internal/database"
	"github.com/docgestor/docgestor/internal/handlers"
	"github.com/docgestor/docgestor/internal/middleware"
	"github.com/docgestor/docgestor/internal/storage"
	"github.com/docgestor/docgestor/internal/types"

	_ "github.com/docgestor/docgestor/docs/api" // Swagger docs
)

// @title Doc-Gestor RH API
// @version 1.0.0
// @description HR document tracking service: employees, compliance documents, expiry monitoring

// @contact.name API Support
// @contact.url https://github.com/docgestor/docgestor

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.SeedDemo {
		if err := database.SeedDemo(db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// File store for uploaded documents
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Required-document checklist shared by evaluator and UI
	checklist, err := compliance.DefaultChecklist()
	if err != nil {
		log.Fatalf("Failed to load checklist: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		// Leave headroom for multipart framing around the file limit
		BodyLimit: int(cfg.MaxUploadSize) + 1024*1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("docgestor")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Serve stored files directly (original names are metadata only)
	app.Static("/uploads", store.BaseDir())

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
	employeeHandler := &handlers.EmployeeHandler{DB: db, Store: store, Checklist: checklist}
	documentHandler := &handlers.DocumentHandler{DB: db, Store: store, Checklist: checklist, MaxUploadSize: cfg.MaxUploadSize}
	settingsHandler := &handlers.SettingsHandler{DB: db}

	// Credential exchange (public)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)

	// Employee routes; static paths registered before /:id
	employees := api.Group("/employees", authRequired)
	employees.Get("/stats/dashboard", employeeHandler.Dashboard)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Document routes
	documents := api.Group("/documents", authRequired)
	documents.Get("/stats/by-status", documentHandler.StatsByStatus)
	documents.Get("/checklist", documentHandler.GetChecklist)
	documents.Get("/employee/:employeeId", documentHandler.ListByEmployee)
	documents.Post("/upload", documentHandler.Upload)
	documents.Get("/:id", documentHandler.Get)
	documents.Get("/:id/download", documentHandler.Download)
	documents.Delete("/:id", documentHandler.Delete)
	documents.Patch("/:id/status", documentHandler.UpdateStatus)

	// Settings routes
	settings := api.Group("/settings", authRequired)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
