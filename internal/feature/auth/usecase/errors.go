// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"

	"codesage_backend/internal/apperror"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateIdentity is returned when the email or username is already taken.
	ErrDuplicateIdentity = apperror.New(apperror.ErrDuplicate, "email or username already registered")

	// ErrInvalidCredentials is returned when the username or password is wrong.
	ErrInvalidCredentials = apperror.New(apperror.ErrAuthentication, "invalid username or password")

	// ErrInvalidToken is returned when a session token fails verification,
	// has expired, or resolves to an inactive user.
	ErrInvalidToken = apperror.New(apperror.ErrAuthentication, "invalid or expired token")
)
