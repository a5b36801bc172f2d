package mocks

import (
	"context"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// MockCommentStore implements store.CommentStore for testing
type MockCommentStore struct {
	CreateFn       func(ctx context.Context, comment *domain.Comment) error
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Comment, error)
	ListFn         func(ctx context.Context, filter store.CommentFilter) ([]domain.Comment, error)
	UpdateFn       func(ctx context.Context, comment *domain.Comment) error
	DeleteFn       func(ctx context.Context, id int64) error
	DeleteByPostFn func(ctx context.Context, postID int64) (int64, error)
}

var _ store.CommentStore = (*MockCommentStore)(nil)

// Create implements the CommentStore interface
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}
	return nil
}

// GetByID implements the CommentStore interface
func (m *MockCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrCommentNotFound
}

// List implements the CommentStore interface
func (m *MockCommentStore) List(ctx context.Context, filter store.CommentFilter) ([]domain.Comment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return []domain.Comment{}, nil
}

// Update implements the CommentStore interface
func (m *MockCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, comment)
	}
	return nil
}

// Delete implements the CommentStore interface
func (m *MockCommentStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// DeleteByPost implements the CommentStore interface
func (m *MockCommentStore) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	if m.DeleteByPostFn != nil {
		return m.DeleteByPostFn(ctx, postID)
	}
	return 0, nil
}

// WithTx implements the CommentStore interface for transaction support
func (m *MockCommentStore) WithTx(tx *gorm.DB) store.CommentStore {
	return m
}
