package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
)

// CommentFilter narrows a comment listing. Nil ids mean "no constraint".
type CommentFilter struct {
	PostID *int64
	UserID *int64
}

// CommentStore defines the interface for comment data persistence.
type CommentStore interface {
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID returns ErrCommentNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)

	// List returns matching comments ordered by id.
	List(ctx context.Context, filter CommentFilter) ([]domain.Comment, error)

	// Update persists the content of an existing comment.
	// Returns ErrCommentNotFound if absent.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete returns ErrCommentNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// DeleteByPost removes every comment on a post and reports how many were removed.
	DeleteByPost(ctx context.Context, postID int64) (int64, error)

	// WithTx returns a CommentStore bound to the given transaction.
	WithTx(tx *gorm.DB) CommentStore
}
