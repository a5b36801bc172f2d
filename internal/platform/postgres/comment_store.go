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

// PostgresCommentStore implements the store.CommentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCommentStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresCommentStore creates a new PostgreSQL implementation of the CommentStore interface.
func NewPostgresCommentStore(db *gorm.DB, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

// WithTx implements store.CommentStore.WithTx
func (s *PostgresCommentStore) WithTx(tx *gorm.DB) store.CommentStore {
	return &PostgresCommentStore{db: tx, logger: s.logger}
}

// Create implements store.CommentStore.Create
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create", slog.String("error", err.Error()))
		return err
	}

	row := commentRowFromDomain(comment)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		log.Error("failed to create comment",
			slog.String("error", redact.Error(err)),
			slog.Int64("post_id", comment.PostID))
		return MapError(err)
	}

	*comment = row.toDomain()
	log.Info("comment created successfully",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID))
	return nil
}

// GetByID implements store.CommentStore.GetByID
func (s *PostgresCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var row commentRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrCommentNotFound
		}
		return nil, MapError(err)
	}
	comment := row.toDomain()
	return &comment, nil
}

// List implements store.CommentStore.List
func (s *PostgresCommentStore) List(ctx context.Context, filter store.CommentFilter) ([]domain.Comment, error) {
	q := s.db.WithContext(ctx).Model(&commentRow{})
	if filter.PostID != nil {
		q = q.Where("post_id = ?", *filter.PostID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}

	var rows []commentRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list comments",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	comments := make([]domain.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, rows[i].toDomain())
	}
	return comments, nil
}

// Update implements store.CommentStore.Update
func (s *PostgresCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&commentRow{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content)
	if result.Error != nil {
		return MapError(result.Error)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrCommentNotFound); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment updated successfully",
		slog.Int64("comment_id", comment.ID))
	return nil
}

// Delete implements store.CommentStore.Delete
func (s *PostgresCommentStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&commentRow{}, id)
	if result.Error != nil {
		return MapError(result.Error)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrCommentNotFound); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment deleted successfully",
		slog.Int64("comment_id", id))
	return nil
}

// DeleteByPost implements store.CommentStore.DeleteByPost
func (s *PostgresCommentStore) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	result := s.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&commentRow{})
	if result.Error != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete comments for post",
			slog.String("error", redact.Error(result.Error)),
			slog.Int64("post_id", postID))
		return 0, MapError(result.Error)
	}
	return result.RowsAffected, nil
}
