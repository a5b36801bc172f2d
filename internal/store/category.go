package store

import (
	"context"

	"github.com/phrazzld/wordsmith-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	Create(ctx context.Context, category *domain.Category) error

	// GetByID returns ErrCategoryNotFound if absent.
	GetByID(ctx context.Context, id int) (*domain.Category, error)

	List(ctx context.Context) ([]domain.Category, error)

	// Update returns ErrCategoryNotFound if absent.
	Update(ctx context.Context, category *domain.Category) error

	// Delete returns ErrCategoryNotFound if absent.
	Delete(ctx context.Context, id int) error
}
