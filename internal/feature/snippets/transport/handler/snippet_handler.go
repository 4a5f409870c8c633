// Package handler provides the HTTP handlers for the snippets feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"codesage_backend/internal/api"
	"codesage_backend/internal/apperror"
	"codesage_backend/internal/feature/snippets/domain/entity"
	jwtmw "codesage_backend/internal/platform/jwt"
)

// SnippetUsecase defines the snippet sharing operations.
type SnippetUsecase interface {
	// Create validates and stores a new snippet owned by ownerID.
	Create(ctx context.Context, ownerID uint, snippet *entity.SharedSnippet) (*entity.SharedSnippet, error)
	// List returns the snippets visible to requesterID, paginated.
	List(ctx context.Context, requesterID uint, skip, limit int) ([]entity.SharedSnippet, error)
	// Get returns one snippet, enforcing the visibility rule.
	Get(ctx context.Context, requesterID uint, id string) (*entity.SharedSnippet, error)
}

// SnippetHandler handles HTTP requests for snippet sharing.
type SnippetHandler struct {
	snippets SnippetUsecase
}

// NewSnippetHandler creates a new SnippetHandler instance.
func NewSnippetHandler(snippets SnippetUsecase) *SnippetHandler {
	return &SnippetHandler{snippets: snippets}
}

// Create handles POST /api/snippets.
func (h *SnippetHandler) Create(c *gin.Context) {
	var req api.CreateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("snippet validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Error(c, apperror.New(apperror.ErrValidation, err.Error()))
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	snippet := &entity.SharedSnippet{
		Code:        req.Code,
		Language:    req.Language,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}

	created, err := h.snippets.Create(c.Request.Context(), userID, snippet)
	if err != nil {
		slog.Warn("snippet create failed", "error", err, "user_id", userID)
		api.Error(c, err)
		return
	}

	slog.Info("snippet created", "id", created.ID, "user_id", userID, "public", created.IsPublic)
	c.JSON(http.StatusOK, toResponse(created))
}

// List handles GET /api/snippets?skip=&limit=.
func (h *SnippetHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	userID := c.GetUint(jwtmw.ContextUserID)

	snippets, err := h.snippets.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		slog.Error("snippet list failed", "error", err, "user_id", userID)
		api.Error(c, err)
		return
	}

	out := make([]api.SnippetResponse, 0, len(snippets))
	for i := range snippets {
		out = append(out, toResponse(&snippets[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /api/snippets/:id.
func (h *SnippetHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	snippet, err := h.snippets.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		slog.Warn("snippet get failed", "error", err, "id", c.Param("id"), "user_id", userID)
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(snippet))
}

// toResponse maps a snippet entity to its API representation.
func toResponse(s *entity.SharedSnippet) api.SnippetResponse {
	return api.SnippetResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Code:        s.Code,
		Language:    s.Language,
		Title:       s.Title,
		Description: s.Description,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		IsPublic:    s.IsPublic,
	}
}
