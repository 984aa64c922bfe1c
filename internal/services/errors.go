package services

import "errors"

var (
	// ErrNotFound means the referenced employee or document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials means the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("invalid data")
)
