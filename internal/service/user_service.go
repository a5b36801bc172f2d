package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/wordsmith-api/internal/cache"
	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/paging"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// UpdateUserInput carries the profile fields a user may change. Username,
// password and role are not editable here.
type UpdateUserInput struct {
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	BirthDate   *time.Time
	Address     string
	City        string
	State       string
	ZipCode     string
	Country     string
	Bio         string
}

// UserService provides user profile operations.
type UserService interface {
	// ListUsers returns every user ordered by id.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// UpdateUser replaces the profile of an existing user. It fails with
	// domain.ErrAlreadyExists when the email or phone number belongs to
	// another user.
	UpdateUser(ctx context.Context, userID int64, input UpdateUserInput) (*domain.User, error)

	// DeleteUser removes a user and, through the schema, their posts and comments.
	DeleteUser(ctx context.Context, userID int64) error
}

// authoredPostsPageSize is the page size used to collect a user's post ids.
const authoredPostsPageSize = 100

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	postStore store.PostStore
	cache     cache.Cache
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// UserServiceDeps are the collaborators of the user service. Cache may be nil.
type UserServiceDeps struct {
	Users store.UserStore
	Posts store.PostStore
	Cache cache.Cache
}

// NewUserService creates a new UserService
func NewUserService(deps UserServiceDeps, logger *slog.Logger) (UserService, error) {
	switch {
	case deps.Users == nil:
		return nil, fmt.Errorf("%w: userStore", ErrNilDependency)
	case deps.Posts == nil:
		return nil, fmt.Errorf("%w: postStore", ErrNilDependency)
	}
	if deps.Cache == nil {
		deps.Cache = cache.NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: deps.Users,
		postStore: deps.Posts,
		cache:     deps.Cache,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// ListUsers implements UserService.ListUsers
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users",
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError("user", "list", "failed to list users", err)
	}
	return users, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, s.storeError(ctx, err, userID, "get")
	}
	return user, nil
}

// UpdateUser implements UserService.UpdateUser
// It loads the full user, applies the profile fields, and passes the
// complete user back to the store.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	userID int64,
	input UpdateUserInput,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, s.storeError(ctx, err, userID, "update")
	}

	if input.Email != user.Email {
		owner, err := s.userStore.GetByEmail(ctx, input.Email)
		switch {
		case err == nil && owner.ID != userID:
			log.Debug("email already used by another user", slog.Int64("user_id", userID))
			return nil, domain.NewAlreadyExistsError(resourceUser, "email", input.Email)
		case err != nil && !store.IsNotFoundError(err):
			return nil, s.storeError(ctx, err, userID, "update")
		}
	}

	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.PhoneNumber = input.PhoneNumber
	user.BirthDate = input.BirthDate
	user.Address = input.Address
	user.City = input.City
	user.State = input.State
	user.ZipCode = input.ZipCode
	user.Country = input.Country
	user.Bio = input.Bio

	if err := s.userStore.Update(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return nil, duplicateUserError(err, user)
		}
		return nil, s.storeError(ctx, err, userID, "update")
	}

	log.Info("user profile updated", slog.Int64("user_id", userID))
	return user, nil
}

// DeleteUser implements UserService.DeleteUser
// The user's posts are removed by the schema, so their cached copies are
// evicted once the delete succeeds.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	postIDs, err := s.authoredPostIDs(ctx, userID)
	if err != nil {
		log.Warn("failed to collect posts for cache eviction",
			slog.Int64("user_id", userID),
			slog.String("error", redact.Error(err)))
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		return s.storeError(ctx, err, userID, "delete")
	}
	for _, id := range postIDs {
		cache.Evict(ctx, s.cache, cache.PostKey(id))
	}
	log.Info("user deleted",
		slog.Int64("user_id", userID),
		slog.Int("posts_evicted", len(postIDs)))
	return nil
}

// authoredPostIDs returns the ids of every post written by userID.
func (s *UserServiceImpl) authoredPostIDs(ctx context.Context, userID int64) ([]int64, error) {
	if _, noop := s.cache.(cache.NoopCache); noop {
		return nil, nil
	}
	var ids []int64
	req := paging.PageRequest{Size: authoredPostsPageSize, SortBy: "id", Direction: paging.Asc}
	for {
		page, err := s.postStore.Query(ctx, store.PostFilter{UserID: &userID}, req)
		if err != nil {
			return ids, err
		}
		for _, p := range page.Items {
			ids = append(ids, p.ID)
		}
		if len(page.Items) < req.Size {
			return ids, nil
		}
		req.Page++
	}
}

func (s *UserServiceImpl) storeError(ctx context.Context, err error, userID int64, operation string) error {
	translated := translateStoreError(err, resourceUser, userID, "user", operation)
	if !isClientError(translated) {
		logger.FromContextOrDefault(ctx, s.logger).Error("user store operation failed",
			slog.String("operation", operation),
			slog.Int64("user_id", userID),
			slog.String("error", redact.Error(err)))
	}
	return translated
}

// duplicateUserError names the unique column a store duplicate collided on.
func duplicateUserError(err error, user *domain.User) error {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return domain.NewAlreadyExistsError(resourceUser, "email", user.Email)
	case errors.Is(err, store.ErrPhoneNumberExists):
		return domain.NewAlreadyExistsError(resourceUser, "phone number", user.PhoneNumber)
	case errors.Is(err, store.ErrUsernameExists):
		return domain.NewAlreadyExistsError(resourceUser, "username", user.Username)
	}
	return domain.NewAlreadyExistsError(resourceUser, "unique field", "")
}
