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

func TestPostgresCommentStore(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresCommentStore(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	category := createTestCategory(t, db, "General")
	first := createTestPost(t, db, "First", alice.ID, category.ID)
	second := createTestPost(t, db, "Second", alice.ID, category.ID)

	c1 := &domain.Comment{Content: "Nice post", PostID: first.ID, UserID: bob.ID}
	c2 := &domain.Comment{Content: "Thanks", PostID: first.ID, UserID: alice.ID}
	c3 := &domain.Comment{Content: "Also nice", PostID: second.ID, UserID: bob.ID}
	for _, c := range []*domain.Comment{c1, c2, c3} {
		require.NoError(t, s.Create(ctx, c))
		assert.NotZero(t, c.ID)
	}

	tests := []struct {
		name   string
		filter store.CommentFilter
		want   []int64
	}{
		{"all", store.CommentFilter{}, []int64{c1.ID, c2.ID, c3.ID}},
		{"by post", store.CommentFilter{PostID: ptr(first.ID)}, []int64{c1.ID, c2.ID}},
		{"by user", store.CommentFilter{UserID: ptr(bob.ID)}, []int64{c1.ID, c3.ID}},
		{"by post and user", store.CommentFilter{PostID: ptr(second.ID), UserID: ptr(alice.ID)}, []int64{}},
		{"post zero", store.CommentFilter{PostID: ptr(int64(0))}, []int64{}},
		{"user zero", store.CommentFilter{UserID: ptr(int64(0))}, []int64{}},
		{"negative post", store.CommentFilter{PostID: ptr(int64(-1))}, []int64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			comments, err := s.List(ctx, tc.filter)
			require.NoError(t, err)
			ids := make([]int64, 0, len(comments))
			for _, c := range comments {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}

	c1.Content = "Edited"
	c1.PostID = second.ID
	require.NoError(t, s.Update(ctx, c1))
	got, err := s.GetByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Content)
	assert.Equal(t, first.ID, got.PostID, "only content is updatable")

	removed, err := s.DeleteByPost(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	require.NoError(t, s.Delete(ctx, c3.ID))
	remaining, err := s.List(ctx, store.CommentFilter{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestPostgresCommentStore_Errors(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresCommentStore(db, nil)
	ctx := context.Background()

	_, err := s.GetByID(ctx, 1)
	assert.ErrorIs(t, err, store.ErrCommentNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 1), store.ErrCommentNotFound)
	assert.ErrorIs(t, s.Update(ctx, &domain.Comment{ID: 1, Content: "x", PostID: 1, UserID: 1}), store.ErrCommentNotFound)

	removed, err := s.DeleteByPost(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, removed)

	err = s.Create(ctx, &domain.Comment{Content: " ", PostID: 1, UserID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
