package mocks

import (
	"context"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/paging"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// MockPostStore implements store.PostStore for testing
type MockPostStore struct {
	CreateFn  func(ctx context.Context, post *domain.Post) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Post, error)
	QueryFn   func(ctx context.Context, filter store.PostFilter, req paging.PageRequest) (paging.PageResult[domain.Post], error)
	UpdateFn  func(ctx context.Context, post *domain.Post) error
	DeleteFn  func(ctx context.Context, id int64) error

	// GetByIDCalls counts GetByID invocations, for cache assertions.
	GetByIDCalls int
}

var _ store.PostStore = (*MockPostStore)(nil)

// Create implements the PostStore interface
func (m *MockPostStore) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}
	return nil
}

// GetByID implements the PostStore interface
func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	m.GetByIDCalls++
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrPostNotFound
}

// Query implements the PostStore interface
func (m *MockPostStore) Query(
	ctx context.Context,
	filter store.PostFilter,
	req paging.PageRequest,
) (paging.PageResult[domain.Post], error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, filter, req)
	}
	return paging.PageResult[domain.Post]{Items: []domain.Post{}, Request: req}, nil
}

// Update implements the PostStore interface
func (m *MockPostStore) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, post)
	}
	return nil
}

// Delete implements the PostStore interface
func (m *MockPostStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// WithTx implements the PostStore interface for transaction support
func (m *MockPostStore) WithTx(tx *gorm.DB) store.PostStore {
	return m
}
