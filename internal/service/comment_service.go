package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/events"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// CommentInput carries the fields of a new comment. Updates only use Content.
type CommentInput struct {
	Content string
	PostID  int64
	UserID  int64
}

// CommentService provides comment operations.
type CommentService interface {
	ListComments(ctx context.Context) ([]domain.Comment, error)
	GetComment(ctx context.Context, commentID int64) (*domain.Comment, error)

	// CreateComment fails with domain.ErrNotFound when the post does not exist.
	CreateComment(ctx context.Context, input CommentInput) (*domain.Comment, error)

	// UpdateComment replaces the content of a comment.
	UpdateComment(ctx context.Context, commentID int64, content string) (*domain.Comment, error)

	DeleteComment(ctx context.Context, commentID int64) error
	ListCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error)
	ListCommentsByUser(ctx context.Context, userID int64) ([]domain.Comment, error)
}

type commentServiceImpl struct {
	comments store.CommentStore
	posts    store.PostStore
	emitter  events.EventEmitter
	logger   *slog.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments store.CommentStore,
	posts store.PostStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (CommentService, error) {
	switch {
	case comments == nil:
		return nil, fmt.Errorf("%w: comments", ErrNilDependency)
	case posts == nil:
		return nil, fmt.Errorf("%w: posts", ErrNilDependency)
	case emitter == nil:
		return nil, fmt.Errorf("%w: emitter", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &commentServiceImpl{
		comments: comments,
		posts:    posts,
		emitter:  emitter,
		logger:   logger.With(slog.String("component", "comment_service")),
	}, nil
}

// ListComments implements CommentService.ListComments
func (s *commentServiceImpl) ListComments(ctx context.Context) ([]domain.Comment, error) {
	return s.list(ctx, store.CommentFilter{})
}

// ListCommentsByPost implements CommentService.ListCommentsByPost
func (s *commentServiceImpl) ListCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	return s.list(ctx, store.CommentFilter{PostID: &postID})
}

// ListCommentsByUser implements CommentService.ListCommentsByUser
func (s *commentServiceImpl) ListCommentsByUser(ctx context.Context, userID int64) ([]domain.Comment, error) {
	return s.list(ctx, store.CommentFilter{UserID: &userID})
}

func (s *commentServiceImpl) list(ctx context.Context, filter store.CommentFilter) ([]domain.Comment, error) {
	comments, err := s.comments.List(ctx, filter)
	if err != nil {
		attrs := []any{slog.String("error", redact.Error(err))}
		if filter.PostID != nil {
			attrs = append(attrs, slog.Int64("post_id", *filter.PostID))
		}
		if filter.UserID != nil {
			attrs = append(attrs, slog.Int64("user_id", *filter.UserID))
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list comments", attrs...)
		return nil, NewServiceError("comment", "list", "failed to list comments", err)
	}
	return comments, nil
}

// GetComment implements CommentService.GetComment
func (s *commentServiceImpl) GetComment(ctx context.Context, commentID int64) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, s.storeError(ctx, err, commentID, "get")
	}
	return comment, nil
}

// CreateComment implements CommentService.CreateComment
func (s *commentServiceImpl) CreateComment(ctx context.Context, input CommentInput) (*domain.Comment, error) {
	comment := &domain.Comment{
		Content: input.Content,
		PostID:  input.PostID,
		UserID:  input.UserID,
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.posts.GetByID(ctx, input.PostID); err != nil {
		return nil, translateStoreError(err, resourcePost, input.PostID, "comment", "create")
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, s.storeError(ctx, err, comment.ID, "create")
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID))
	emit(ctx, s.emitter, s.logger, events.CommentCreated, events.CommentPayload{
		CommentID: comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
	})
	return comment, nil
}

// UpdateComment implements CommentService.UpdateComment
func (s *commentServiceImpl) UpdateComment(
	ctx context.Context,
	commentID int64,
	content string,
) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, s.storeError(ctx, err, commentID, "update")
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, s.storeError(ctx, err, commentID, "update")
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment updated",
		slog.Int64("comment_id", commentID))
	return comment, nil
}

// DeleteComment implements CommentService.DeleteComment
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID int64) error {
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return s.storeError(ctx, err, commentID, "delete")
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("comment deleted",
		slog.Int64("comment_id", commentID))
	return nil
}

func (s *commentServiceImpl) storeError(ctx context.Context, err error, commentID int64, operation string) error {
	translated := translateStoreError(err, resourceComment, commentID, "comment", operation)
	if !isClientError(translated) {
		logger.FromContextOrDefault(ctx, s.logger).Error("comment store operation failed",
			slog.String("operation", operation),
			slog.Int64("comment_id", commentID),
			slog.String("error", redact.Error(err)))
	}
	return translated
}
