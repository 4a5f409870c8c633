package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"codesage_backend/internal/feature/review/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.CodeReview{}, &entity.PerformanceMetric{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestReviewRepository_CreateReview(t *testing.T) {
	repo := NewReviewRepository(setupTestDB(t))

	review := &entity.CodeReview{
		UserID:     1,
		Code:       "print(1)",
		Language:   "python",
		ReviewData: `{"suggestions":[],"explanation":"x","quality_score":50,"best_practices":[]}`,
		Version:    1,
	}

	err := repo.CreateReview(context.Background(), review)

	require.NoError(t, err)
	assert.NotZero(t, review.ID, "ID is not set")
	assert.False(t, review.CreatedAt.IsZero(), "CreatedAt is not set")
}

func TestReviewRepository_AppendMetric(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)

	review := &entity.CodeReview{
		UserID:     1,
		Code:       "print(1)",
		Language:   "python",
		ReviewData: "{}",
		Version:    1,
	}
	require.NoError(t, repo.CreateReview(context.Background(), review))

	for i := 0; i < 2; i++ {
		err := repo.AppendMetric(context.Background(), &entity.PerformanceMetric{
			CodeReviewID: review.ID,
			MetricName:   "review_duration_ms",
			MetricValue:  float64(100 + i),
		})
		require.NoError(t, err)
	}

	// Metrics accumulate; nothing overwrites earlier rows.
	var metrics []entity.PerformanceMetric
	require.NoError(t, db.Where("code_review_id = ?", review.ID).Find(&metrics).Error)
	assert.Len(t, metrics, 2)
	assert.Equal(t, 100.0, metrics[0].MetricValue)
	assert.Equal(t, 101.0, metrics[1].MetricValue)
}
