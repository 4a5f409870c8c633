// Package adapters provides the repository implementations for the snippets
// feature.
package adapters

import (
	"context"
	"errors"

	"github.com/rs/xid"
	"gorm.io/gorm"

	"codesage_backend/internal/feature/snippets/domain/entity"
	"codesage_backend/internal/feature/snippets/usecase"
)

// snippetPostgres is the gorm implementation of the SnippetRepository
// interface.
type snippetPostgres struct {
	db *gorm.DB
}

// Compile-time check that snippetPostgres implements SnippetRepository.
var _ usecase.SnippetRepository = (*snippetPostgres)(nil)

// NewSnippetRepository creates a new snippetPostgres instance.
func NewSnippetRepository(db *gorm.DB) *snippetPostgres {
	return &snippetPostgres{db: db}
}

// Create assigns an opaque ID and persists the snippet.
func (r *snippetPostgres) Create(ctx context.Context, s *entity.SharedSnippet) error {
	s.ID = xid.New().String()
	return r.db.WithContext(ctx).Create(s).Error
}

// FindByID retrieves a snippet by its opaque ID.
func (r *snippetPostgres) FindByID(ctx context.Context, id string) (*entity.SharedSnippet, error) {
	var s entity.SharedSnippet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSnippetNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListVisible returns public snippets plus the user's own, in insertion
// order, paginated by skip/limit.
func (r *snippetPostgres) ListVisible(ctx context.Context, userID uint, skip, limit int) ([]entity.SharedSnippet, error) {
	var out []entity.SharedSnippet
	err := r.db.WithContext(ctx).
		Where("is_public = ? OR user_id = ?", true, userID).
		Order("created_at").
		Offset(skip).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
