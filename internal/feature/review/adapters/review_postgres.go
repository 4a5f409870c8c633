// Package adapters provides the repository implementations for the review
// feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"codesage_backend/internal/feature/review/domain/entity"
	"codesage_backend/internal/feature/review/usecase"
)

// reviewPostgres is the gorm implementation of the ReviewRepository interface.
type reviewPostgres struct {
	db *gorm.DB
}

// Compile-time check that reviewPostgres implements ReviewRepository.
var _ usecase.ReviewRepository = (*reviewPostgres)(nil)

// NewReviewRepository creates a new reviewPostgres instance.
func NewReviewRepository(db *gorm.DB) *reviewPostgres {
	return &reviewPostgres{db: db}
}

// CreateReview persists a review row and fills in its generated ID.
func (r *reviewPostgres) CreateReview(ctx context.Context, review *entity.CodeReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// AppendMetric records a measurement for an existing review.
// Metrics are append-only; nothing ever updates or deletes them.
func (r *reviewPostgres) AppendMetric(ctx context.Context, metric *entity.PerformanceMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}
