package handlers

import (
	"log"

	"github.com/docgestor/docgestor/internal/services"
	"github.com/docgestor/docgestor/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SettingsHandler handles application settings routes
type SettingsHandler struct {
	DB *gorm.DB
}

// Get handles GET /api/settings
// @Summary Get application settings
// @Tags Settings
// @Produce json
// @Success 200 {object} services.AppSettings
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := services.GetSettings(h.DB)
	if err != nil {
		log.Printf("settings.get: %v", err)
		return utils.InternalErrorResponse(c, "settings.get")
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

// Update handles PUT /api/settings
// @Summary Update application settings
// @Description Partial update. docAlertDays feeds the dashboard expiry window.
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body services.SettingsInput true "Fields to update"
// @Success 200 {object} services.AppSettings
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in services.SettingsInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body", "settings.update")
	}

	settings, err := services.UpdateSettings(h.DB, in)
	if err != nil {
		return serviceErrorResponse(c, err, "Settings not found", "settings.update")
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}
