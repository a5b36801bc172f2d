package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres"
	"github.com/phrazzld/wordsmith-api/internal/store"
	"github.com/phrazzld/wordsmith-api/internal/testdb"
)

func TestPostgresCategoryStore(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresCategoryStore(db, nil)
	ctx := context.Background()

	tech := createTestCategory(t, db, "Tech")
	travel := createTestCategory(t, db, "Travel")

	got, err := s.GetByID(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", got.Title)
	assert.Equal(t, "Tech posts", got.Description)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{*tech, *travel}, all)

	tech.Description = "Computers and such"
	require.NoError(t, s.Update(ctx, tech))
	got, err = s.GetByID(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Computers and such", got.Description)

	require.NoError(t, s.Delete(ctx, travel.ID))
	_, err = s.GetByID(ctx, travel.ID)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestPostgresCategoryStore_Errors(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresCategoryStore(db, nil)
	ctx := context.Background()

	_, err := s.GetByID(ctx, 7)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 7), store.ErrCategoryNotFound)
	assert.ErrorIs(t, s.Update(ctx, &domain.Category{ID: 7, Title: "t", Description: "d"}), store.ErrCategoryNotFound)

	err = s.Create(ctx, &domain.Category{Title: "", Description: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
