package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/api/shared"
	"github.com/phrazzld/wordsmith-api/internal/domain"
)

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantMsg    string
		wantErrors []string
	}{
		{
			name:       "not found",
			err:        domain.NewNotFoundError("Post", int64(4)),
			wantStatus: http.StatusNotFound,
			wantError:  "Not Found",
			wantMsg:    "Post not found with id: 4",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("loading: %w", domain.NewNotFoundError("Category", 2)),
			wantStatus: http.StatusNotFound,
			wantError:  "Not Found",
			wantMsg:    "Category not found with id: 2",
		},
		{
			name:       "already exists",
			err:        domain.NewAlreadyExistsError("User", "username", "alice"),
			wantStatus: http.StatusConflict,
			wantError:  "Conflict",
			wantMsg:    "User already exists with username: alice",
		},
		{
			name:       "bad credentials",
			err:        domain.ErrBadCredentials,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
			wantMsg:    "Bad credentials",
		},
		{
			name:       "invalid argument keeps only its message",
			err:        fmt.Errorf("%w: unexpected EOF", domain.NewInvalidArgumentError("Malformed JSON request")),
			wantStatus: http.StatusBadRequest,
			wantError:  "Bad Request",
			wantMsg:    "Malformed JSON request",
		},
		{
			name: "validation",
			err: domain.NewValidationError(
				domain.FieldError{Field: "title", Message: "Title cannot be blank"},
				domain.FieldError{Field: "content", Message: "Content cannot be blank"},
			),
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation Error",
			wantMsg:    "Bad Request",
			wantErrors: []string{"title: Title cannot be blank", "content: Content cannot be blank"},
		},
		{
			name:       "internal",
			err:        errors.New("pq: password authentication failed for user admin"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
			wantMsg:    InternalErrorMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/things/1", nil)
			req = req.WithContext(shared.SetTraceID(req.Context()))
			rec := httptest.NewRecorder()

			HandleAPIError(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, tc.wantError, resp.Error)
			assert.Equal(t, tc.wantMsg, resp.Message)
			assert.Equal(t, tc.wantErrors, resp.Errors)
			assert.Equal(t, "/api/things/1", resp.Path)
			assert.NotEmpty(t, resp.TraceID)
		})
	}
}

func TestHandleAPIErrorDoesNotLeakInternalDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/1", nil)
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, errors.New(`ERROR: relation "posts" does not exist (SQLSTATE 42P01)`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
	assert.NotContains(t, rec.Body.String(), "SQLSTATE")
}
