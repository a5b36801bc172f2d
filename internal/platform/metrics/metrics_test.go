package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(m *HTTPMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/posts/{postId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Delete("/api/posts/{postId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	m := New(false)
	router := newRouter(m)

	for _, path := range []string{"/api/posts/1", "/api/posts/2", "/api/posts/3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/posts/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/42", nil))

	tests := []struct {
		method string
		route  string
		status string
		want   float64
	}{
		{http.MethodGet, "/api/posts/{postId}", "200", 3},
		{http.MethodDelete, "/api/posts/{postId}", "204", 1},
		{http.MethodGet, "/health", "200", 1},
		{http.MethodGet, UnmatchedRoute, "404", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.requests.WithLabelValues(tt.method, tt.route, tt.status))
		assert.Equal(t, tt.want, got, "%s %s %s", tt.method, tt.route, tt.status)
	}

	assert.Equal(t, 4, testutil.CollectAndCount(m.requests))
	assert.Equal(t, 4, testutil.CollectAndCount(m.duration))
}

func TestHandlerExposesCollectors(t *testing.T) {
	t.Parallel()

	m := New(false)
	router := newRouter(m)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts/7", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/api/posts/{postId}",status="200"} 1`)
	assert.Contains(t, body, "http_request_duration_seconds_bucket")
	assert.False(t, strings.Contains(body, "go_goroutines"), "runtime collectors are opt-in")
}

func TestNewWithRuntimeCollectors(t *testing.T) {
	t.Parallel()

	m := New(true)
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_goroutines")
}
