package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"record not found", gorm.ErrRecordNotFound, store.ErrNotFound},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"pg unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, store.ErrDuplicate},
		{"pg foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, store.ErrInvalidEntity},
		{"pg check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, store.ErrInvalidEntity},
		{"pg not null", &pgconn.PgError{Code: pgerrcode.NotNullViolation}, store.ErrInvalidEntity},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), store.ErrDuplicate},
		{"wrapped pg unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), store.ErrDuplicate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tc.err), tc.target)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))

	original := errors.New("connection reset")
	assert.Same(t, original, MapError(original))

	syntax := &pgconn.PgError{Code: pgerrcode.SyntaxError}
	assert.Equal(t, error(syntax), MapError(syntax))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "postgres username constraint",
			err:    &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"},
			target: store.ErrUsernameExists,
		},
		{
			name:   "postgres email constraint",
			err:    &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			target: store.ErrEmailExists,
		},
		{
			name:   "sqlite phone column",
			err:    errors.New("UNIQUE constraint failed: users.phone_number"),
			target: store.ErrPhoneNumberExists,
		},
		{
			name:   "unknown constraint",
			err:    &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_other_key"},
			target: store.ErrDuplicate,
		},
		{
			name:   "not a unique violation",
			err:    gorm.ErrRecordNotFound,
			target: store.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapUniqueViolation(tc.err, userUniqueColumns), tc.target)
		})
	}
}

func TestMapUniqueViolationPrefersLongestColumn(t *testing.T) {
	t.Parallel()

	errName := errors.New("name taken")
	errUsername := errors.New("username taken")
	err := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"}

	mapped := MapUniqueViolation(err, map[string]error{"name": errName, "username": errUsername})
	assert.ErrorIs(t, mapped, errUsername)
	assert.NotErrorIs(t, mapped, errName)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(1, store.ErrPostNotFound))
	assert.ErrorIs(t, CheckRowsAffected(0, store.ErrPostNotFound), store.ErrPostNotFound)
	assert.ErrorIs(t, CheckRowsAffected(0, nil), store.ErrNotFound)
}
