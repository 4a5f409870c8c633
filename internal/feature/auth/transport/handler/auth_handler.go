// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codesage_backend/internal/api"
	"codesage_backend/internal/apperror"
)

// AuthUsecase defines the credential service operations.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user and returns a session token.
	Register(ctx context.Context, email, username, password string) (string, error)
	// Login authenticates a user and returns a session token on success.
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for credential operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/auth/register.
// Duplicate email or username responds 400; validation failures respond 422.
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Error(c, apperror.New(apperror.ErrValidation, err.Error()))
		return
	}
	token, err := h.auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		api.Error(c, err)
		return
	}
	slog.Info("user registered", "email", req.Email, "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login handles POST /api/auth/login.
// The response never distinguishes unknown users from wrong passwords.
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Error(c, apperror.New(apperror.ErrValidation, err.Error()))
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		api.Error(c, err)
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
