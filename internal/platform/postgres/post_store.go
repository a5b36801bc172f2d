package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/paging"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// postSortFields lists the properties posts can be sorted by.
var postSortFields = paging.NewSortFields("Post", map[string]string{
	"id":         "id",
	"title":      "title",
	"content":    "content",
	"userId":     "user_id",
	"categoryId": "category_id",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
})

// likeEscaper escapes LIKE wildcards in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db *gorm.DB, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *gorm.DB) store.PostStore {
	return &PostgresPostStore{db: tx, logger: s.logger}
}

// Create implements store.PostStore.Create
// Returns store.ErrInvalidEntity if the author or category does not exist.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create", slog.String("error", err.Error()))
		return err
	}

	row := postRowFromDomain(post)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		log.Error("failed to create post",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", post.UserID),
			slog.Int("category_id", post.CategoryID))
		return MapError(err)
	}

	*post = row.toDomain()
	log.Info("post created successfully",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", post.UserID))
	return nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var row postRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrPostNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get post",
			slog.String("error", redact.Error(err)),
			slog.Int64("post_id", id))
		return nil, MapError(err)
	}
	post := row.toDomain()
	return &post, nil
}

// postFilterScope applies the constraints set in filter.
func postFilterScope(filter store.PostFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.UserID != nil {
			db = db.Where("user_id = ?", *filter.UserID)
		}
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.TitleContains != "" {
			db = db.Where(`title LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(filter.TitleContains)+"%")
		}
		return db
	}
}

// Query implements store.PostStore.Query
func (s *PostgresPostStore) Query(
	ctx context.Context,
	filter store.PostFilter,
	req paging.PageRequest,
) (paging.PageResult[domain.Post], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := req.Check(); err != nil {
		return paging.PageResult[domain.Post]{}, err
	}
	order, err := postSortFields.OrderClause(req)
	if err != nil {
		return paging.PageResult[domain.Post]{}, err
	}
	// Ties are broken by id so pages never overlap.
	if req.SortBy != "id" {
		order += ", id ASC"
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&postRow{}).
		Scopes(postFilterScope(filter)).
		Count(&total).Error; err != nil {
		log.Error("failed to count posts", slog.String("error", redact.Error(err)))
		return paging.PageResult[domain.Post]{}, MapError(err)
	}

	var rows []postRow
	if err := s.db.WithContext(ctx).
		Scopes(postFilterScope(filter)).
		Order(order).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&rows).Error; err != nil {
		log.Error("failed to query posts", slog.String("error", redact.Error(err)))
		return paging.PageResult[domain.Post]{}, MapError(err)
	}

	items := make([]domain.Post, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}

	log.Debug("queried posts",
		slog.Int("page", req.Page),
		slog.Int("size", req.Size),
		slog.Int("returned", len(items)),
		slog.Int64("total", total))

	return paging.PageResult[domain.Post]{Items: items, Total: total, Request: req}, nil
}

// Update implements store.PostStore.Update
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("post_id", post.ID))
		return err
	}

	row := postRowFromDomain(post)
	row.UpdatedAt = s.db.NowFunc()

	result := s.db.WithContext(ctx).
		Model(&postRow{}).
		Where("id = ?", post.ID).
		Select("title", "content", "category_id", "updated_at").
		Updates(row)
	if result.Error != nil {
		log.Error("failed to update post",
			slog.String("error", redact.Error(result.Error)),
			slog.Int64("post_id", post.ID))
		return MapError(result.Error)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrPostNotFound); err != nil {
		return err
	}

	post.UpdatedAt = row.UpdatedAt
	log.Info("post updated successfully", slog.Int64("post_id", post.ID))
	return nil
}

// Delete implements store.PostStore.Delete
func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := s.db.WithContext(ctx).Delete(&postRow{}, id)
	if result.Error != nil {
		log.Error("failed to delete post",
			slog.String("error", redact.Error(result.Error)),
			slog.Int64("post_id", id))
		return MapError(result.Error)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrPostNotFound); err != nil {
		return err
	}

	log.Info("post deleted successfully", slog.Int64("post_id", id))
	return nil
}
