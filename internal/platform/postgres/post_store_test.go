package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/paging"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres"
	"github.com/phrazzld/wordsmith-api/internal/store"
	"github.com/phrazzld/wordsmith-api/internal/testdb"
)

func pageRequest(page, size int, sortBy string, dir paging.Direction) paging.PageRequest {
	return paging.PageRequest{Page: page, Size: size, SortBy: sortBy, Direction: dir}
}

func titles(posts []domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestPostgresPostStore_CRUD(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresPostStore(db, nil)
	ctx := context.Background()

	user := createTestUser(t, db, "author")
	tech := createTestCategory(t, db, "Tech")
	life := createTestCategory(t, db, "Life")

	post := createTestPost(t, db, "Hello", user.ID, tech.ID)
	assert.NotZero(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, user.ID, got.UserID)

	got.Title = "Hello again"
	got.CategoryID = life.ID
	got.UserID = 999
	require.NoError(t, s.Update(ctx, got))

	updated, err := s.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, life.ID, updated.CategoryID)
	assert.Equal(t, user.ID, updated.UserID, "author is not updatable")

	require.NoError(t, s.Delete(ctx, post.ID))
	_, err = s.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, store.ErrPostNotFound)
	assert.ErrorIs(t, s.Delete(ctx, post.ID), store.ErrPostNotFound)
}

func TestPostgresPostStore_CreateValidation(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresPostStore(db, nil)

	err := s.Create(context.Background(), &domain.Post{Title: "", Content: "x"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages(), "title: Title cannot be blank")
}

func TestPostgresPostStore_Query(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresPostStore(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	tech := createTestCategory(t, db, "Tech")
	life := createTestCategory(t, db, "Life")

	createTestPost(t, db, "Go generics", alice.ID, tech.ID)
	createTestPost(t, db, "Baking bread", alice.ID, life.ID)
	createTestPost(t, db, "Go channels", bob.ID, tech.ID)
	createTestPost(t, db, "Gardening", bob.ID, life.ID)
	createTestPost(t, db, "100% honest", bob.ID, life.ID)

	tests := []struct {
		name   string
		filter store.PostFilter
		req    paging.PageRequest
		want   []string
		total  int64
	}{
		{
			name:  "first page by id",
			req:   pageRequest(0, 2, "id", paging.Asc),
			want:  []string{"Go generics", "Baking bread"},
			total: 5,
		},
		{
			name:  "last partial page",
			req:   pageRequest(2, 2, "id", paging.Asc),
			want:  []string{"100% honest"},
			total: 5,
		},
		{
			name:  "page past the end",
			req:   pageRequest(9, 2, "id", paging.Asc),
			want:  []string{},
			total: 5,
		},
		{
			name:  "sorted by title descending",
			req:   pageRequest(0, 3, "title", paging.Desc),
			want:  []string{"Go generics", "Go channels", "Gardening"},
			total: 5,
		},
		{
			name:   "by user",
			filter: store.PostFilter{UserID: ptr(alice.ID)},
			req:    pageRequest(0, 10, "id", paging.Asc),
			want:   []string{"Go generics", "Baking bread"},
			total:  2,
		},
		{
			name:   "by category",
			filter: store.PostFilter{CategoryID: ptr(tech.ID)},
			req:    pageRequest(0, 10, "id", paging.Desc),
			want:   []string{"Go channels", "Go generics"},
			total:  2,
		},
		{
			name:   "by user and category",
			filter: store.PostFilter{UserID: ptr(bob.ID), CategoryID: ptr(life.ID)},
			req:    pageRequest(0, 10, "id", paging.Asc),
			want:   []string{"Gardening", "100% honest"},
			total:  2,
		},
		{
			name:   "user zero is a constraint",
			filter: store.PostFilter{UserID: ptr(int64(0))},
			req:    pageRequest(0, 10, "id", paging.Asc),
			want:   []string{},
			total:  0,
		},
		{
			name:   "category zero is a constraint",
			filter: store.PostFilter{CategoryID: ptr(0)},
			req:    pageRequest(0, 10, "id", paging.Asc),
			want:   []string{},
			total:  0,
		},
		{
			name:   "negative ids match nothing",
			filter: store.PostFilter{UserID: ptr(int64(-1)), CategoryID: ptr(-1)},
			req:    pageRequest(0, 10, "id", paging.Asc),
			want:   []string{},
			total:  0,
		},
		{
			name:   "title contains",
			filter: store.PostFilter{TitleContains: "Go "},
			req:    pageRequest(0, 10, "id", paging.Asc),
			want:   []string{"Go generics", "Go channels"},
			total:  2,
		},
		{
			name:   "title contains wildcard literal",
			filter: store.PostFilter{TitleContains: "%"},
			req:    pageRequest(0, 10, "id", paging.Asc),
			want:   []string{"100% honest"},
			total:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := s.Query(ctx, tc.filter, tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(result.Items))
			assert.Equal(t, tc.total, result.Total)
			assert.Equal(t, tc.req, result.Request)
		})
	}
}

func TestPostgresPostStore_QueryRejectsBadRequests(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresPostStore(db, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     paging.PageRequest
		message string
	}{
		{
			name:    "unknown sort property",
			req:     pageRequest(0, 10, "password", paging.Asc),
			message: "No property 'password' found for type 'Post'",
		},
		{
			name:    "zero page size",
			req:     pageRequest(0, 0, "id", paging.Asc),
			message: "Page size must not be less than one",
		},
		{
			name:    "negative page size",
			req:     pageRequest(0, -5, "id", paging.Asc),
			message: "Page size must not be less than one",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Query(ctx, store.PostFilter{}, tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.EqualError(t, err, tc.message)
		})
	}
}

func TestPostgresPostStore_QueryFeedsEnvelope(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	s := postgres.NewPostgresPostStore(db, nil)

	user := createTestUser(t, db, "writer")
	category := createTestCategory(t, db, "Misc")
	for _, title := range []string{"one", "two", "three"} {
		createTestPost(t, db, title, user.ID, category.ID)
	}

	req, err := paging.Normalize(intPtr(2), 2, "id", "asc")
	require.NoError(t, err)

	result, err := s.Query(context.Background(), store.PostFilter{}, req)
	require.NoError(t, err)

	envelope := paging.Adapt(result)
	assert.Equal(t, 2, envelope.PageNumber)
	assert.Equal(t, 2, envelope.PageSize)
	assert.Equal(t, int64(3), envelope.TotalElements)
	assert.Equal(t, 2, envelope.TotalPages)
	assert.True(t, envelope.Last)
	assert.Equal(t, []string{"three"}, titles(envelope.Content))
}

func intPtr(v int) *int { return &v }

func ptr[T any](v T) *T { return &v }
