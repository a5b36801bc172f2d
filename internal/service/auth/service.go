package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/redact"
	"github.com/phrazzld/wordsmith-api/internal/store"
)

// RegisterInput carries a new account's credentials and optional profile.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
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

// Service registers accounts and exchanges credentials for identity tokens.
type Service interface {
	// Register creates an account and returns its id. It fails with
	// domain.ErrAlreadyExists naming the conflicting field when the username
	// or email is taken.
	Register(ctx context.Context, input RegisterInput) (int64, error)

	// Authenticate returns a signed token for a matching username and
	// password, or domain.ErrBadCredentials.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// ServiceImpl implements Service on top of a UserStore.
type ServiceImpl struct {
	db          *gorm.DB
	users       store.UserStore
	hasher      PasswordHasher
	verifier    PasswordVerifier
	codec       TokenCodec
	tokenExpiry int64
	logger      *slog.Logger
}

var _ Service = (*ServiceImpl)(nil)

// NewService creates an auth Service. tokenExpiryMs is the lifetime of issued tokens.
func NewService(
	db *gorm.DB,
	users store.UserStore,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	codec TokenCodec,
	tokenExpiryMs int64,
	logger *slog.Logger,
) *ServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceImpl{
		db:          db,
		users:       users,
		hasher:      hasher,
		verifier:    verifier,
		codec:       codec,
		tokenExpiry: tokenExpiryMs,
		logger:      logger.With("component", "auth_service"),
	}
}

// Register implements Service.Register.
// The existence checks and the insert share one transaction. A concurrent
// registration that slips past the checks is caught by the unique
// constraints and reported the same way.
func (s *ServiceImpl) Register(ctx context.Context, input RegisterInput) (int64, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return 0, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		BirthDate:    input.BirthDate,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		Country:      input.Country,
		Role:         domain.RoleUser,
		Bio:          input.Bio,
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		txUsers := s.users.WithTx(tx)

		taken, err := txUsers.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if taken {
			return domain.NewAlreadyExistsError("User", "username", input.Username)
		}

		taken, err = txUsers.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if taken {
			return domain.NewAlreadyExistsError("User", "email", input.Email)
		}

		return txUsers.Create(ctx, user)
	})
	if err != nil {
		err = translateDuplicate(err, input)
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Debug("registration rejected", "error", redact.Error(err))
		} else if !errors.Is(err, domain.ErrValidation) {
			s.logger.Error("failed to register user", "error", redact.Error(err))
		}
		return 0, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user.ID, nil
}

// translateDuplicate turns unique-constraint errors from the store into the
// domain conflict for the colliding field.
func translateDuplicate(err error, input RegisterInput) error {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return domain.NewAlreadyExistsError("User", "username", input.Username)
	case errors.Is(err, store.ErrEmailExists):
		return domain.NewAlreadyExistsError("User", "email", input.Email)
	case errors.Is(err, store.ErrPhoneNumberExists):
		return domain.NewAlreadyExistsError("User", "phone number", input.PhoneNumber)
	case errors.Is(err, store.ErrDuplicate):
		return domain.NewAlreadyExistsError("User", "username or email", "")
	}
	return err
}

// Authenticate implements Service.Authenticate.
func (s *ServiceImpl) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("authentication failed: unknown user")
			return "", domain.ErrBadCredentials
		}
		s.logger.Error("failed to load user for authentication", "error", redact.Error(err))
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch", "user_id", user.ID)
		return "", domain.ErrBadCredentials
	}

	claims := map[string]any{
		ClaimAuthorities: user.Authorities(),
		ClaimUsername:    user.Username,
	}
	token, err := s.codec.Issue(ctx, claims, user.Username, s.tokenExpiry)
	if err != nil {
		return "", err
	}

	s.logger.Info("user authenticated", "user_id", user.ID)
	return token, nil
}
