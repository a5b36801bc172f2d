package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/store"
)

// sqliteUniqueMessage is how the pure-Go SQLite driver used in tests reports
// unique constraint failures, e.g. "UNIQUE constraint failed: users.email".
const sqliteUniqueMessage = "UNIQUE constraint failed"

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context and provide better debugging information.
// This function should be used in all database operations to ensure consistent error handling.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case pgerrcode.CheckViolation:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case pgerrcode.NotNullViolation:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return err
}

// IsUniqueViolation checks if the given error is a unique constraint violation,
// either from PostgreSQL or from the SQLite driver used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), sqliteUniqueMessage)
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// violatedColumn names the column behind a unique violation. PostgreSQL
// reports the constraint (users_email_key), SQLite the column (users.email).
func violatedColumn(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	msg := err.Error()
	if i := strings.Index(msg, sqliteUniqueMessage); i >= 0 {
		return strings.TrimSpace(msg[i+len(sqliteUniqueMessage):])
	}
	return ""
}

// MapUniqueViolation maps a unique violation to the specific error registered
// for the violated column. columns is matched against the constraint name or
// column reported by the driver. Errors that are not unique violations are
// passed through MapError.
func MapUniqueViolation(err error, columns map[string]error) error {
	if !IsUniqueViolation(err) {
		return MapError(err)
	}

	// Longest match first so "username" wins over a "name" entry.
	violated := violatedColumn(err)
	var (
		best    error
		bestLen int
	)
	for column, specific := range columns {
		if strings.Contains(violated, column) && len(column) > bestLen {
			best, bestLen = specific, len(column)
		}
	}
	if best != nil {
		return fmt.Errorf("%w: %v", best, err)
	}

	return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
func CheckRowsAffected(rowsAffected int64, notFound error) error {
	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}
	return nil
}
