package service

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/cache"
	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/events"
	"github.com/phrazzld/wordsmith-api/internal/paging"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// PostInput carries the writable fields of a post. UserID is only used on create.
type PostInput struct {
	Title      string
	Content    string
	UserID     int64
	CategoryID int
}

// PostService provides post operations, including the paged finders.
type PostService interface {
	ListPosts(ctx context.Context, q PageQuery) (paging.Envelope[domain.Post], error)
	GetPost(ctx context.Context, postID int64) (*domain.Post, error)
	CreatePost(ctx context.Context, input PostInput) (*domain.Post, error)

	// UpdatePost changes title, content and category. The author never changes.
	UpdatePost(ctx context.Context, postID int64, input PostInput) (*domain.Post, error)

	// DeletePost removes a post together with its comments.
	DeletePost(ctx context.Context, postID int64) error

	ListPostsByCategory(ctx context.Context, categoryID int, q PageQuery) (paging.Envelope[domain.Post], error)
	ListPostsByUser(ctx context.Context, userID int64, q PageQuery) (paging.Envelope[domain.Post], error)
	ListPostsByUserAndCategory(
		ctx context.Context,
		userID int64,
		categoryID int,
		q PageQuery,
	) (paging.Envelope[domain.Post], error)

	// SearchPosts pages through posts whose title contains term.
	SearchPosts(ctx context.Context, term string, q PageQuery) (paging.Envelope[domain.Post], error)
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	db         *gorm.DB
	posts      store.PostStore
	comments   store.CommentStore
	users      store.UserStore
	categories store.CategoryStore
	cache      cache.Cache
	emitter    events.EventEmitter
	logger     *slog.Logger
}

// PostServiceDeps groups the collaborators of the post service.
type PostServiceDeps struct {
	DB         *gorm.DB
	Posts      store.PostStore
	Comments   store.CommentStore
	Users      store.UserStore
	Categories store.CategoryStore
	Cache      cache.Cache
	Emitter    events.EventEmitter
}

// NewPostService creates a new PostService
// It returns an error if any of the required dependencies are nil. A nil
// cache disables caching.
func NewPostService(deps PostServiceDeps, logger *slog.Logger) (PostService, error) {
	switch {
	case deps.DB == nil:
		return nil, fmt.Errorf("%w: db", ErrNilDependency)
	case deps.Posts == nil:
		return nil, fmt.Errorf("%w: posts", ErrNilDependency)
	case deps.Comments == nil:
		return nil, fmt.Errorf("%w: comments", ErrNilDependency)
	case deps.Users == nil:
		return nil, fmt.Errorf("%w: users", ErrNilDependency)
	case deps.Categories == nil:
		return nil, fmt.Errorf("%w: categories", ErrNilDependency)
	case deps.Emitter == nil:
		return nil, fmt.Errorf("%w: emitter", ErrNilDependency)
	}
	if deps.Cache == nil {
		deps.Cache = cache.NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &postServiceImpl{
		db:         deps.DB,
		posts:      deps.Posts,
		comments:   deps.Comments,
		users:      deps.Users,
		categories: deps.Categories,
		cache:      deps.Cache,
		emitter:    deps.Emitter,
		logger:     logger.With(slog.String("component", "post_service")),
	}, nil
}

// ListPosts implements PostService.ListPosts
func (s *postServiceImpl) ListPosts(ctx context.Context, q PageQuery) (paging.Envelope[domain.Post], error) {
	return s.query(ctx, store.PostFilter{}, q)
}

// ListPostsByCategory implements PostService.ListPostsByCategory
func (s *postServiceImpl) ListPostsByCategory(
	ctx context.Context,
	categoryID int,
	q PageQuery,
) (paging.Envelope[domain.Post], error) {
	return s.query(ctx, store.PostFilter{CategoryID: &categoryID}, q)
}

// ListPostsByUser implements PostService.ListPostsByUser
func (s *postServiceImpl) ListPostsByUser(
	ctx context.Context,
	userID int64,
	q PageQuery,
) (paging.Envelope[domain.Post], error) {
	return s.query(ctx, store.PostFilter{UserID: &userID}, q)
}

// ListPostsByUserAndCategory implements PostService.ListPostsByUserAndCategory
func (s *postServiceImpl) ListPostsByUserAndCategory(
	ctx context.Context,
	userID int64,
	categoryID int,
	q PageQuery,
) (paging.Envelope[domain.Post], error) {
	return s.query(ctx, store.PostFilter{UserID: &userID, CategoryID: &categoryID}, q)
}

// SearchPosts implements PostService.SearchPosts
func (s *postServiceImpl) SearchPosts(
	ctx context.Context,
	term string,
	q PageQuery,
) (paging.Envelope[domain.Post], error) {
	return s.query(ctx, store.PostFilter{TitleContains: term}, q)
}

// query normalizes the page input, runs the filtered query and adapts the
// result into the response envelope.
func (s *postServiceImpl) query(
	ctx context.Context,
	filter store.PostFilter,
	q PageQuery,
) (paging.Envelope[domain.Post], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	req, err := q.normalize()
	if err != nil {
		log.Debug("rejected page query", slog.String("error", err.Error()))
		return paging.Envelope[domain.Post]{}, err
	}

	result, err := s.posts.Query(ctx, filter, req)
	if err != nil {
		if isClientError(err) {
			return paging.Envelope[domain.Post]{}, err
		}
		log.Error("failed to query posts", slog.String("error", redact.Error(err)))
		return paging.Envelope[domain.Post]{}, NewServiceError("post", "query", "failed to query posts", err)
	}

	return paging.Adapt(result), nil
}

// GetPost implements PostService.GetPost
// Posts are served from the cache when present.
func (s *postServiceImpl) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	post, err := cache.GetOrCompute(ctx, s.cache, cache.PostKey(postID),
		func(ctx context.Context) (domain.Post, error) {
			p, err := s.posts.GetByID(ctx, postID)
			if err != nil {
				return domain.Post{}, err
			}
			return *p, nil
		})
	if err != nil {
		return nil, s.storeError(ctx, err, postID, "get")
	}
	return &post, nil
}

// CreatePost implements PostService.CreatePost
func (s *postServiceImpl) CreatePost(ctx context.Context, input PostInput) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post := &domain.Post{
		Title:      input.Title,
		Content:    input.Content,
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		return nil, translateStoreError(err, resourceUser, input.UserID, "post", "create")
	}
	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, s.storeError(ctx, err, post.ID, "create")
	}

	log.Info("post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", post.UserID))
	emit(ctx, s.emitter, s.logger, events.PostCreated, events.PostPayload{
		PostID:     post.ID,
		UserID:     post.UserID,
		CategoryID: post.CategoryID,
	})
	return post, nil
}

// UpdatePost implements PostService.UpdatePost
// The updated post replaces the cached copy.
func (s *postServiceImpl) UpdatePost(ctx context.Context, postID int64, input PostInput) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, s.storeError(ctx, err, postID, "update")
	}

	post.Title = input.Title
	post.Content = input.Content
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if input.CategoryID != post.CategoryID {
		if err := s.requireCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = input.CategoryID
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, s.storeError(ctx, err, postID, "update")
	}

	cache.Put(ctx, s.cache, cache.PostKey(postID), post)
	log.Info("post updated", slog.Int64("post_id", postID))
	emit(ctx, s.emitter, s.logger, events.PostUpdated, events.PostPayload{
		PostID:     post.ID,
		UserID:     post.UserID,
		CategoryID: post.CategoryID,
	})
	return post, nil
}

// DeletePost implements PostService.DeletePost
// Comments and the post are removed in one transaction; the cached copy is evicted.
func (s *postServiceImpl) DeletePost(ctx context.Context, postID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removedComments int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		n, err := s.comments.WithTx(tx).DeleteByPost(ctx, postID)
		if err != nil {
			return err
		}
		removedComments = n
		return s.posts.WithTx(tx).Delete(ctx, postID)
	})
	if err != nil {
		return s.storeError(ctx, err, postID, "delete")
	}

	cache.Evict(ctx, s.cache, cache.PostKey(postID))
	log.Info("post deleted",
		slog.Int64("post_id", postID),
		slog.Int64("comments_removed", removedComments))
	emit(ctx, s.emitter, s.logger, events.PostDeleted, events.PostPayload{PostID: postID})
	return nil
}

func (s *postServiceImpl) requireCategory(ctx context.Context, categoryID int) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return translateStoreError(err, resourceCategory, categoryID, "post", "check_category")
	}
	return nil
}

func (s *postServiceImpl) storeError(ctx context.Context, err error, postID int64, operation string) error {
	translated := translateStoreError(err, resourcePost, postID, "post", operation)
	if !isClientError(translated) {
		logger.FromContextOrDefault(ctx, s.logger).Error("post store operation failed",
			slog.String("operation", operation),
			slog.Int64("post_id", postID),
			slog.String("error", redact.Error(err)))
	}
	return translated
}
