// Package usecase implements the business logic for snippet sharing.
package usecase

import (
	"context"

	"codesage_backend/internal/apperror"
	"codesage_backend/internal/feature/snippets/domain/entity"
)

const (
	// MaxTitleLength caps snippet titles.
	MaxTitleLength = 100

	// MaxCodeLength caps snippet bodies (~100KB).
	MaxCodeLength = 100000

	// DefaultListLimit applies when the client sends no limit.
	DefaultListLimit = 20

	// MaxListLimit is the hard ceiling for one page.
	MaxListLimit = 100
)

var (
	// ErrSnippetNotFound is returned when no snippet exists with the given ID.
	ErrSnippetNotFound = apperror.New(apperror.ErrNotFound, "snippet not found")

	// ErrSnippetForbidden is returned when a private snippet is requested by
	// someone other than its owner.
	ErrSnippetForbidden = apperror.New(apperror.ErrForbidden, "snippet is private")
)

// SnippetRepository abstracts the persistence layer for snippets.
type SnippetRepository interface {
	// Create persists a new snippet and assigns its opaque ID.
	Create(ctx context.Context, snippet *entity.SharedSnippet) error

	// FindByID retrieves a snippet by its opaque ID.
	// It returns ErrSnippetNotFound if no such snippet exists.
	FindByID(ctx context.Context, id string) (*entity.SharedSnippet, error)

	// ListVisible returns snippets that are public or owned by userID,
	// in storage order, paginated by skip/limit.
	ListVisible(ctx context.Context, userID uint, skip, limit int) ([]entity.SharedSnippet, error)
}

// snippetUsecase implements snippet sharing rules.
type snippetUsecase struct {
	snippets SnippetRepository
}

// NewSnippetUsecase creates a new snippetUsecase instance.
func NewSnippetUsecase(snippets SnippetRepository) *snippetUsecase {
	return &snippetUsecase{snippets: snippets}
}

// Create validates and stores a new snippet owned by ownerID.
func (u *snippetUsecase) Create(ctx context.Context, ownerID uint, snippet *entity.SharedSnippet) (*entity.SharedSnippet, error) {
	if snippet.Title == "" {
		return nil, apperror.New(apperror.ErrValidation, "title is required")
	}
	if len(snippet.Title) > MaxTitleLength {
		return nil, apperror.Newf(apperror.ErrValidation,
			"title exceeds maximum length of %d characters", MaxTitleLength)
	}
	if snippet.Code == "" {
		return nil, apperror.New(apperror.ErrValidation, "code is required")
	}
	if len(snippet.Code) > MaxCodeLength {
		return nil, apperror.Newf(apperror.ErrValidation,
			"code exceeds maximum length of %d bytes", MaxCodeLength)
	}

	snippet.UserID = ownerID
	if err := u.snippets.Create(ctx, snippet); err != nil {
		return nil, err
	}
	return snippet, nil
}

// List returns the snippets visible to requesterID: everything public plus
// the requester's own private snippets.
func (u *snippetUsecase) List(ctx context.Context, requesterID uint, skip, limit int) ([]entity.SharedSnippet, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return u.snippets.ListVisible(ctx, requesterID, skip, limit)
}

// Get returns the snippet with the given ID, applying the visibility rule:
// private snippets are only readable by their owner.
func (u *snippetUsecase) Get(ctx context.Context, requesterID uint, id string) (*entity.SharedSnippet, error) {
	snippet, err := u.snippets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !snippet.IsPublic && snippet.UserID != requesterID {
		return nil, ErrSnippetForbidden
	}
	return snippet, nil
}
