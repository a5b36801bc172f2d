package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres"
)

func createTestUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		FirstName:    "Test",
		LastName:     "User",
	}
	require.NoError(t, postgres.NewPostgresUserStore(db, nil).Create(context.Background(), user))
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, title string) *domain.Category {
	t.Helper()
	category := &domain.Category{Title: title, Description: title + " posts"}
	require.NoError(t, postgres.NewPostgresCategoryStore(db, nil).Create(context.Background(), category))
	return category
}

func createTestPost(t *testing.T, db *gorm.DB, title string, userID int64, categoryID int) *domain.Post {
	t.Helper()
	post := &domain.Post{
		Title:      title,
		Content:    "Content of " + title,
		UserID:     userID,
		CategoryID: categoryID,
	}
	require.NoError(t, postgres.NewPostgresPostStore(db, nil).Create(context.Background(), post))
	return post
}
