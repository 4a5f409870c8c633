package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"codesage_backend/internal/apperror"
	"codesage_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrDuplicateIdentity if a user
	// with the same email or username already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a user by login name.
	// It returns ErrUserNotFound if the user does not exist.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenIssuer abstracts session token generation.
type TokenIssuer interface {
	// GenerateToken creates a signed session token for the given user.
	GenerateToken(userID uint, username, email string) (string, error)
}

// authUsecase implements the credential service.
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *authUsecase {
	return &authUsecase{users: users, tokens: tokens}
}

// validatePassword checks the password against the minimum security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperror.Newf(apperror.ErrValidation,
			"password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register creates a new user with a hashed password and returns a session
// token for the fresh account.
func (u *authUsecase) Register(ctx context.Context, email, username, password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
		IsActive: true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Login authenticates a user and returns a session token on success.
// A bcrypt comparison runs even when the user does not exist so lookup
// failures are not distinguishable by timing.
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on every path.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Username, user.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, nil
}

// ResolveActiveUser loads the user a verified token refers to.
// Deactivated or missing accounts fail with ErrInvalidToken so a stale token
// cannot outlive its account.
func (u *authUsecase) ResolveActiveUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}
