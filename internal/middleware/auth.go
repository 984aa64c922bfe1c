package middleware

import (
	"strings"

	"github.com/docgestor/docgestor/internal/services"
	"github.com/docgestor/docgestor/internal/types"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired validates the Authorization bearer token and stores the
// authenticated user's claims in the request context.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Missing bearer token",
				Type:    "auth",
			}
		}

		claims, err := services.ValidateToken(secret, token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired token",
				Type:    "auth",
			}
		}

		c.Locals("userID", claims.UserID)
		c.Locals("userEmail", claims.Email)
		c.Locals("userRole", claims.Role)

		return c.Next()
	}
}

// AdminRequired restricts a route to admin accounts. Must run after
// AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		if role != "admin" {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Admin role required",
				Type:    "auth",
			}
		}
		return c.Next()
	}
}
