package paging

// PageResult is one page of query results together with the total number of
// matching rows and the request that produced it.
type PageResult[T any] struct {
	Items   []T
	Total   int64
	Request PageRequest
}

// TotalPages is the number of pages needed to hold Total rows.
func (r PageResult[T]) TotalPages() int {
	if r.Request.Size <= 0 {
		return 1
	}
	size := int64(r.Request.Size)
	pages := r.Total / size
	if r.Total%size != 0 {
		pages++
	}
	return int(pages)
}

// IsLast reports whether no page follows this one.
func (r PageResult[T]) IsLast() bool {
	return r.Request.Page+1 >= r.TotalPages()
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](r PageResult[T], fn func(T) U) PageResult[U] {
	items := make([]U, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, fn(item))
	}
	return PageResult[U]{Items: items, Total: r.Total, Request: r.Request}
}

// Envelope is the wire format of a paged list response.
type Envelope[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// Adapt builds the response envelope for a page. The page number is converted
// back to 1-based; content order is preserved.
func Adapt[T any](r PageResult[T]) Envelope[T] {
	content := r.Items
	if content == nil {
		content = []T{}
	}
	return Envelope[T]{
		Content:       content,
		PageNumber:    r.Request.Page + 1,
		PageSize:      r.Request.Size,
		TotalElements: r.Total,
		TotalPages:    r.TotalPages(),
		Last:          r.IsLast(),
	}
}

// MapContent converts the content of an envelope, keeping its metadata.
func MapContent[T, U any](e Envelope[T], fn func(T) U) Envelope[U] {
	content := make([]U, 0, len(e.Content))
	for _, item := range e.Content {
		content = append(content, fn(item))
	}
	return Envelope[U]{
		Content:       content,
		PageNumber:    e.PageNumber,
		PageSize:      e.PageSize,
		TotalElements: e.TotalElements,
		TotalPages:    e.TotalPages,
		Last:          e.Last,
	}
}
