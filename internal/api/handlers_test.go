package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/api/middleware"
	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/config"
	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/events"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres"
	"github.com/phrazzld/wordsmith-api/internal/service"
	"github.com/phrazzld/wordsmith-api/internal/service/auth"
	"github.com/phrazzld/wordsmith-api/internal/testdb"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

// testServer is a router wired to real services over an in-memory database.
type testServer struct {
	t          *testing.T
	router     http.Handler
	codec      auth.TokenCodec
	categories *postgres.PostgresCategoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testdb.Open(t)

	users := postgres.NewPostgresUserStore(db, log)
	posts := postgres.NewPostgresPostStore(db, log)
	categories := postgres.NewPostgresCategoryStore(db, log)
	comments := postgres.NewPostgresCommentStore(db, log)
	emitter := events.NewInMemoryEventEmitter(log)

	codec, err := auth.NewTokenCodec(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	authService := auth.NewService(db, users, auth.NewBcryptHasher(4), auth.NewBcryptVerifier(), codec, 60_000, log)

	userService, err := service.NewUserService(service.UserServiceDeps{Users: users, Posts: posts}, log)
	require.NoError(t, err)
	postService, err := service.NewPostService(service.PostServiceDeps{
		DB:         db,
		Posts:      posts,
		Comments:   comments,
		Users:      users,
		Categories: categories,
		Emitter:    emitter,
	}, log)
	require.NoError(t, err)
	categoryService, err := service.NewCategoryService(categories, nil, log)
	require.NoError(t, err)
	commentService, err := service.NewCommentService(comments, posts, emitter, log)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.NewTokenGuard(codec, users, log).Authenticate)
	r.Get("/health", HealthHandler)
	r.Get("/api/info", InfoHandler(config.APIConfig{Version: "v1", Description: "test"}))

	authHandler := NewAuthHandler(authService, log)
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/authenticate", authHandler.Authenticate)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthenticated)
		r.Route("/api/users", NewUserHandler(userService, log).Routes)
		r.Route("/api/posts", NewPostHandler(postService, log).Routes)
		r.Route("/api/categories", NewCategoryHandler(categoryService, log).Routes)
		r.Route("/api/comments", NewCommentHandler(commentService, log).Routes)
	})

	return &testServer{t: t, router: r, codec: codec, categories: categories}
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its id.
func (s *testServer) register(username string) int64 {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse battery staple",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var msg string
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &msg))
	var id int64
	_, err := fmt.Sscanf(msg, "User registered successfully with id: %d", &id)
	require.NoError(s.t, err)
	return id
}

// login registers username and returns its id and a valid token.
func (s *testServer) login(username string) (int64, string) {
	s.t.Helper()

	id := s.register(username)
	rec := s.do(http.MethodPost, "/api/auth/authenticate", "", map[string]any{
		"username": username,
		"password": "correct horse battery staple",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AuthenticationResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return id, resp.Token
}

// category stores a category directly and returns its id.
func (s *testServer) category(title string) int {
	s.t.Helper()

	c := &domain.Category{Title: title, Description: title + " posts"}
	require.NoError(s.t, s.categories.Create(context.Background(), c))
	return c.ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	return decode[shared.ErrorResponse](t, rec)
}
