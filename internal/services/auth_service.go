package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docgestor/docgestor/internal/models"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenClaims is what the auth middleware extracts from a bearer token.
type TokenClaims struct {
	UserID uint64
	Email  string
	Role   string
}

// RegisterUser creates an account with a bcrypt-hashed password.
func RegisterUser(db *gorm.DB, name, email, password, role string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || !strings.Contains(email, "@") || len(password) < 6 {
		return nil, fmt.Errorf("%w: name, valid email and a password of at least 6 characters are required", ErrValidation)
	}
	if role == "" {
		role = "user"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check user email: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, Password: string(hash), Role: role}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies the email/password pair. Unknown email and wrong
// password are indistinguishable to the caller.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueToken signs an HS256 bearer token for the user.
func IssueToken(secret string, ttl time.Duration, user *models.User) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		Subject(strconv.FormatUint(user.ID, 10)).
		Claim("email", user.Email).
		Claim("role", user.Role).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), []byte(secret)))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// ValidateToken parses and verifies a bearer token and returns its claims.
func ValidateToken(secret, raw string) (*TokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), []byte(secret)),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	sub, ok := token.Subject()
	if !ok || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id: %w", err)
	}

	claims := TokenClaims{UserID: userID}
	if err := token.Get("email", &claims.Email); err != nil {
		return nil, fmt.Errorf("token has no email claim: %w", err)
	}
	if err := token.Get("role", &claims.Role); err != nil {
		return nil, fmt.Errorf("token has no role claim: %w", err)
	}
	return &claims, nil
}
