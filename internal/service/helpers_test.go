package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/events"
	"github.com/phrazzld/wordsmith-api/internal/platform/postgres"
	"github.com/phrazzld/wordsmith-api/internal/testdb"
)

// eventRecorder collects the types of every event it receives.
type eventRecorder struct {
	mu     sync.Mutex
	events []*events.Event
}

func (r *eventRecorder) HandleEvent(_ context.Context, event *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// storeFixture is an in-memory database with real stores over it.
type storeFixture struct {
	db         *gorm.DB
	users      *postgres.PostgresUserStore
	posts      *postgres.PostgresPostStore
	categories *postgres.PostgresCategoryStore
	comments   *postgres.PostgresCommentStore
	emitter    *events.InMemoryEventEmitter
	recorder   *eventRecorder
}

func newStoreFixture(t *testing.T) storeFixture {
	t.Helper()
	db := testdb.Open(t)
	emitter := events.NewInMemoryEventEmitter(nil)
	recorder := &eventRecorder{}
	emitter.RegisterHandler(recorder)

	return storeFixture{
		db:         db,
		users:      postgres.NewPostgresUserStore(db, nil),
		posts:      postgres.NewPostgresPostStore(db, nil),
		categories: postgres.NewPostgresCategoryStore(db, nil),
		comments:   postgres.NewPostgresCommentStore(db, nil),
		emitter:    emitter,
		recorder:   recorder,
	}
}

func (f storeFixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f storeFixture) category(t *testing.T, title string) *domain.Category {
	t.Helper()
	c := &domain.Category{Title: title, Description: title + " posts"}
	require.NoError(t, f.categories.Create(context.Background(), c))
	return c
}

func (f storeFixture) post(t *testing.T, title string, userID int64, categoryID int) *domain.Post {
	t.Helper()
	p := &domain.Post{Title: title, Content: "About " + title, UserID: userID, CategoryID: categoryID}
	require.NoError(t, f.posts.Create(context.Background(), p))
	return p
}

func intPtr(v int) *int { return &v }

func itoa(v int) string { return fmt.Sprintf("%d", v) }
