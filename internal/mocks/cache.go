package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/wordsmith-api/internal/cache"
)

// MockCache is a mock of cache.Cache for use with testify/mock
type MockCache struct {
	mock.Mock
}

var _ cache.Cache = (*MockCache)(nil)

// Get is a mock implementation of cache.Cache.Get
func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

// Set is a mock implementation of cache.Cache.Set
func (m *MockCache) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Delete is a mock implementation of cache.Cache.Delete
func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
