package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/docgestor/docgestor/internal/models"
	"github.com/docgestor/docgestor/internal/services"
	"github.com/docgestor/docgestor/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles credential exchange routes
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

type credentialsInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/auth/register
// @Summary Register a user account
// @Description Create an account and return a bearer token with the user profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsInput true "Account data"
// @Success 201 {object} authResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in credentialsInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body", "auth.register")
	}

	user, err := services.RegisterUser(h.DB, in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		return serviceErrorResponse(c, err, "User not found", "auth.register")
	}

	token, err := services.IssueToken(h.JWTSecret, h.TokenTTL, user)
	if err != nil {
		log.Printf("auth.register: %v", err)
		return utils.InternalErrorResponse(c, "auth.register")
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange email/password for a bearer token and the user profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsInput true "Credentials"
// @Success 200 {object} authResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentialsInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body", "auth.login")
	}

	user, err := services.Authenticate(h.DB, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized, "auth.login")
		}
		log.Printf("auth.login: %v", err)
		return utils.InternalErrorResponse(c, "auth.login")
	}

	token, err := services.IssueToken(h.JWTSecret, h.TokenTTL, user)
	if err != nil {
		log.Printf("auth.login: %v", err)
		return utils.InternalErrorResponse(c, "auth.login")
	}

	return c.Status(fiber.StatusOK).JSON(authResponse{Token: token, User: user})
}
