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

// userUniqueColumns maps unique user columns to the error reported when they collide.
var userUniqueColumns = map[string]error{
	"username":     store.ErrUsernameExists,
	"email":        store.ErrEmailExists,
	"phone_number": store.ErrPhoneNumberExists,
}

// userProfileColumns are the columns Update is allowed to change.
var userProfileColumns = []string{
	"email", "first_name", "last_name", "phone_number", "birth_date",
	"address", "city", "state", "zip_code", "country", "bio", "updated_at",
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a gorm session or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db *gorm.DB, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *gorm.DB) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(s.db.NowFunc()); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	row := userRowFromDomain(user)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		mapped := MapUniqueViolation(err, userUniqueColumns)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate user rejected", slog.String("error", redact.Error(err)))
			return mapped
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return mapped
	}

	*user = *row.toDomain()
	log.Info("user created successfully", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.first(ctx, "id = ?", id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.first(ctx, "username = ?", username)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *PostgresUserStore) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// ExistsByUsername implements store.UserStore.ExistsByUsername
func (s *PostgresUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

// ExistsByEmail implements store.UserStore.ExistsByEmail
func (s *PostgresUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

func (s *PostgresUserStore) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&userRow{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, MapError(err)
	}
	return count > 0, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toDomain())
	}
	return users, nil
}

// Update implements store.UserStore.Update
// Username, password hash and role are not changed by Update.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(s.db.NowFunc()); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}

	row := userRowFromDomain(user)
	row.UpdatedAt = s.db.NowFunc()

	result := s.db.WithContext(ctx).
		Model(&userRow{}).
		Where("id = ?", user.ID).
		Select(userProfileColumns).
		Updates(row)
	if result.Error != nil {
		log.Warn("failed to update user",
			slog.String("error", redact.Error(result.Error)),
			slog.Int64("user_id", user.ID))
		return MapUniqueViolation(result.Error, userUniqueColumns)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrUserNotFound); err != nil {
		return err
	}

	user.UpdatedAt = row.UpdatedAt
	log.Info("user updated successfully", slog.Int64("user_id", user.ID))
	return nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := s.db.WithContext(ctx).Delete(&userRow{}, id)
	if result.Error != nil {
		log.Error("failed to delete user",
			slog.String("error", redact.Error(result.Error)),
			slog.Int64("user_id", id))
		return MapError(result.Error)
	}
	if err := CheckRowsAffected(result.RowsAffected, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user deleted successfully", slog.Int64("user_id", id))
	return nil
}
