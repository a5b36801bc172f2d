package service

import "github.com/phrazzld/wordsmith-api/internal/paging"

// PageQuery is the raw pagination input of a list call. Page is 1-based and
// may be nil.
type PageQuery struct {
	Page      *int
	Size      int
	SortBy    string
	Direction string
}

// DefaultPageQuery returns the query used when the caller gives no parameters.
func DefaultPageQuery() PageQuery {
	page := paging.DefaultPage
	return PageQuery{
		Page:      &page,
		Size:      paging.DefaultSize,
		SortBy:    paging.DefaultSortBy,
		Direction: paging.DefaultDirection,
	}
}

func (q PageQuery) normalize() (paging.PageRequest, error) {
	return paging.Normalize(q.Page, q.Size, q.SortBy, q.Direction)
}
