package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordsmith-api/internal/cache"
	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Title       string
	Description string
}

// CategoryService provides category operations.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, categoryID int) (*domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID int, input CategoryInput) (*domain.Category, error)

	// DeleteCategory fails with domain.ErrInvalidArgument while posts still use the category.
	DeleteCategory(ctx context.Context, categoryID int) error
}

type categoryServiceImpl struct {
	categories store.CategoryStore
	cache      cache.Cache
	logger     *slog.Logger
}

// NewCategoryService creates a new CategoryService. A nil cache disables caching.
func NewCategoryService(
	categories store.CategoryStore,
	c cache.Cache,
	logger *slog.Logger,
) (CategoryService, error) {
	if categories == nil {
		return nil, fmt.Errorf("%w: categories", ErrNilDependency)
	}
	if c == nil {
		c = cache.NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryServiceImpl{
		categories: categories,
		cache:      c,
		logger:     logger.With(slog.String("component", "category_service")),
	}, nil
}

// ListCategories implements CategoryService.ListCategories
func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list categories",
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError("category", "list", "failed to list categories", err)
	}
	return categories, nil
}

// GetCategory implements CategoryService.GetCategory
func (s *categoryServiceImpl) GetCategory(ctx context.Context, categoryID int) (*domain.Category, error) {
	category, err := cache.GetOrCompute(ctx, s.cache, cache.CategoryKey(categoryID),
		func(ctx context.Context) (domain.Category, error) {
			c, err := s.categories.GetByID(ctx, categoryID)
			if err != nil {
				return domain.Category{}, err
			}
			return *c, nil
		})
	if err != nil {
		return nil, s.storeError(ctx, err, categoryID, "get")
	}
	return &category, nil
}

// CreateCategory implements CategoryService.CreateCategory
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	category := &domain.Category{Title: input.Title, Description: input.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, s.storeError(ctx, err, category.ID, "create")
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("category created",
		slog.Int("category_id", category.ID))
	return category, nil
}

// UpdateCategory implements CategoryService.UpdateCategory
func (s *categoryServiceImpl) UpdateCategory(
	ctx context.Context,
	categoryID int,
	input CategoryInput,
) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, s.storeError(ctx, err, categoryID, "update")
	}

	category.Title = input.Title
	category.Description = input.Description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, s.storeError(ctx, err, categoryID, "update")
	}

	cache.Put(ctx, s.cache, cache.CategoryKey(categoryID), category)
	logger.FromContextOrDefault(ctx, s.logger).Info("category updated",
		slog.Int("category_id", categoryID))
	return category, nil
}

// DeleteCategory implements CategoryService.DeleteCategory
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, categoryID int) error {
	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return s.storeError(ctx, err, categoryID, "delete")
	}
	cache.Evict(ctx, s.cache, cache.CategoryKey(categoryID))
	logger.FromContextOrDefault(ctx, s.logger).Info("category deleted",
		slog.Int("category_id", categoryID))
	return nil
}

func (s *categoryServiceImpl) storeError(ctx context.Context, err error, categoryID int, operation string) error {
	translated := translateStoreError(err, resourceCategory, categoryID, "category", operation)
	if !isClientError(translated) {
		logger.FromContextOrDefault(ctx, s.logger).Error("category store operation failed",
			slog.String("operation", operation),
			slog.Int("category_id", categoryID),
			slog.String("error", redact.Error(err)))
	}
	return translated
}
