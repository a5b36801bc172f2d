package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and fills in its ID and timestamps.
	// Returns ErrUsernameExists, ErrEmailExists or ErrPhoneNumberExists when a
	// unique column collides.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by id. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByUsername reports whether the username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns every user ordered by id.
	List(ctx context.Context) ([]domain.User, error)

	// Update persists all mutable profile fields of an existing user.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *gorm.DB) UserStore
}
