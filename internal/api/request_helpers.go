package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/service"
)

// Query parameters understood by paged list endpoints.
const (
	queryPage      = "page"
	querySize      = "size"
	querySortBy    = "sortBy"
	queryDirection = "direction"
)

// getPathInt64 extracts an int64 id from the URL path parameters.
func getPathInt64(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewInvalidArgumentError("Invalid value '%s' for path parameter '%s'", raw, paramName)
	}
	return id, nil
}

// getPathInt extracts an int id from the URL path parameters.
func getPathInt(r *http.Request, paramName string) (int, error) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewInvalidArgumentError("Invalid value '%s' for path parameter '%s'", raw, paramName)
	}
	return id, nil
}

// getPageQuery reads page, size, sortBy and direction from the query string.
// Absent or empty parameters take the defaults page=1, size=10, sortBy=id
// and direction=asc. page and size must be integers when given.
func getPageQuery(r *http.Request) (service.PageQuery, error) {
	q := service.DefaultPageQuery()
	values := r.URL.Query()

	if raw := values.Get(queryPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return service.PageQuery{}, invalidQueryParam(queryPage, raw)
		}
		q.Page = &page
	}
	if raw := values.Get(querySize); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return service.PageQuery{}, invalidQueryParam(querySize, raw)
		}
		q.Size = size
	}
	if raw := values.Get(querySortBy); raw != "" {
		q.SortBy = raw
	}
	if raw := values.Get(queryDirection); raw != "" {
		q.Direction = raw
	}
	return q, nil
}

func invalidQueryParam(name, raw string) error {
	return domain.NewInvalidArgumentError("Invalid value '%s' for query parameter '%s'", raw, name)
}
