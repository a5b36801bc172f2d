package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/paging"
)

// PostFilter narrows a post query. Nil ids and an empty title mean
// "no constraint"; a set id is always applied, even when it is zero.
type PostFilter struct {
	UserID        *int64
	CategoryID    *int
	TitleContains string
}

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post and fills in its ID and timestamps.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post. Returns ErrPostNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// Query returns one page of posts matching the filter, sorted as requested,
	// plus the total number of matches. Unknown sort properties and page sizes
	// below one fail with domain.ErrInvalidArgument.
	Query(ctx context.Context, filter PostFilter, req paging.PageRequest) (paging.PageResult[domain.Post], error)

	// Update persists title, content and category of an existing post.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post. Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a PostStore bound to the given transaction.
	WithTx(tx *gorm.DB) PostStore
}
