package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/docgestor/docgestor/internal/services"
	"github.com/docgestor/docgestor/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

// serviceErrorResponse converts a service error into the JSON error
// envelope. Unexpected errors are logged and surfaced as a generic 500.
func serviceErrorResponse(c *fiber.Ctx, err error, notFoundMessage, errorType string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, notFoundMessage)
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrDuplicateEmail):
		return utils.ValidationErrorResponse(c, err.Error(), errorType)
	default:
		log.Printf("%s: %v", errorType, err)
		return utils.InternalErrorResponse(c, errorType)
	}
}
