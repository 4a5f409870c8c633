package jwtmw

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"codesage_backend/internal/api"
	"codesage_backend/internal/feature/auth/domain/entity"
	authusecase "codesage_backend/internal/feature/auth/usecase"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// UserResolver loads the account a verified token refers to.
type UserResolver interface {
	ResolveActiveUser(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a gin middleware that validates bearer tokens and
// restricts access to active, authenticated users.
func AuthRequired(secret string, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			api.AbortError(c, authusecase.ErrInvalidToken)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is accepted; anything else is a forged token.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			api.AbortError(c, authusecase.ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			api.AbortError(c, authusecase.ErrInvalidToken)
			return
		}
		sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
		if !ok {
			api.AbortError(c, authusecase.ErrInvalidToken)
			return
		}

		// The token is stateless but the account behind it must still exist
		// and be active.
		user, err := users.ResolveActiveUser(c.Request.Context(), uint(sub))
		if err != nil {
			api.AbortError(c, err)
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUsername, user.Username)
		c.Next()
	}
}
