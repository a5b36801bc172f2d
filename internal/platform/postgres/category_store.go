package postgres

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
func NewPostgresCategoryStore(db *gorm.DB, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return err
	}

	row := categoryRowFromDomain(category)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		log.Error("failed to create category", slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	*category = *row.toDomain()
	log.Info("category created successfully", slog.Int("category_id", category.ID))
	return nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	var row categoryRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, MapError(err)
	}
	categories := make([]domain.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, *rows[i].toDomain())
	}
	return categories, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&categoryRow{}).
		Where("id = ?", category.ID).
		Select("title", "description").
		Updates(categoryRowFromDomain(category))
	if result.Error != nil {
		return MapError(result.Error)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrCategoryNotFound); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("category updated successfully",
		slog.Int("category_id", category.ID))
	return nil
}

// Delete implements store.CategoryStore.Delete
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&categoryRow{}, id)
	if result.Error != nil {
		if IsForeignKeyViolation(result.Error) {
			logger.FromContextOrDefault(ctx, s.logger).Warn("category still referenced by posts",
				slog.Int("category_id", id))
		}
		return MapError(result.Error)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrCategoryNotFound); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("category deleted successfully",
		slog.Int("category_id", id))
	return nil
}
