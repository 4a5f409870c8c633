// Package handler provides the HTTP handlers for the review feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codesage_backend/internal/api"
	"codesage_backend/internal/apperror"
	"codesage_backend/internal/feature/review/domain/entity"
	jwtmw "codesage_backend/internal/platform/jwt"
)

// ReviewUsecase defines the review orchestration operation.
type ReviewUsecase interface {
	// Review runs the full review pipeline for the given user's code.
	Review(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error)
}

// ReviewHandler handles HTTP requests for code reviews.
type ReviewHandler struct {
	reviews ReviewUsecase
}

// NewReviewHandler creates a new ReviewHandler instance.
func NewReviewHandler(reviews ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Review handles POST /api/review. Requires a prior rate-limiter pass and
// authentication; both are enforced by middleware before this runs.
func (h *ReviewHandler) Review(c *gin.Context) {
	var req api.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("review validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Error(c, apperror.New(apperror.ErrValidation, err.Error()))
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)

	result, err := h.reviews.Review(c.Request.Context(), userID, req.Code, req.Language, req.Context)
	if err != nil {
		slog.Error("review failed", "error", err, "user_id", userID, "language", req.Language)
		api.Error(c, err)
		return
	}

	slog.Info("review completed", "user_id", userID, "language", req.Language,
		"quality_score", result.QualityScore)
	c.JSON(http.StatusOK, api.ReviewResponse{
		Suggestions:   result.Suggestions,
		Explanation:   result.Explanation,
		QualityScore:  result.QualityScore,
		BestPractices: result.BestPractices,
	})
}
