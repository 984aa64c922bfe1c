package handlers_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/docgestor/docgestor/internal/compliance"
	"github.com/docgestor/docgestor/internal/handlers"
	"github.com/docgestor/docgestor/internal/models"
	"github.com/docgestor/docgestor/internal/storage"
	"github.com/docgestor/docgestor/internal/types"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// setupTestDB creates a throwaway SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Document{},
		&models.Setting{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupStore creates a throwaway upload directory
func setupStore(t *testing.T) *storage.Store {
	store, err := storage.New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return store
}

func testChecklist(t *testing.T) compliance.Checklist {
	cl, err := compliance.DefaultChecklist()
	if err != nil {
		t.Fatalf("Failed to load checklist: %v", err)
	}
	return cl
}

// newTestApp wires every route the way cmd/server does, minus the auth
// middleware so handlers can be exercised directly.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *storage.Store) {
	db := setupTestDB(t)
	store := setupStore(t)
	cl := testChecklist(t)

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})

	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: testJWTSecret, TokenTTL: time.Hour}
	employeeHandler := &handlers.EmployeeHandler{DB: db, Store: store, Checklist: cl}
	documentHandler := &handlers.DocumentHandler{DB: db, Store: store, Checklist: cl, MaxUploadSize: 10 * 1024 * 1024}
	settingsHandler := &handlers.SettingsHandler{DB: db}

	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	api.Get("/employees/stats/dashboard", employeeHandler.Dashboard)
	api.Get("/employees", employeeHandler.List)
	api.Post("/employees", employeeHandler.Create)
	api.Get("/employees/:id", employeeHandler.Get)
	api.Put("/employees/:id", employeeHandler.Update)
	api.Delete("/employees/:id", employeeHandler.Delete)

	api.Get("/documents/stats/by-status", documentHandler.StatsByStatus)
	api.Get("/documents/checklist", documentHandler.GetChecklist)
	api.Get("/documents/employee/:employeeId", documentHandler.ListByEmployee)
	api.Post("/documents/upload", documentHandler.Upload)
	api.Get("/documents/:id", documentHandler.Get)
	api.Get("/documents/:id/download", documentHandler.Download)
	api.Delete("/documents/:id", documentHandler.Delete)
	api.Patch("/documents/:id/status", documentHandler.UpdateStatus)

	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)

	return app, db, store
}

// testErrorHandler mirrors the server's global error mapping
func testErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var customErr *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error(), "ok": false})
}
