package paging

import (
	"math"
	"strings"

	"github.com/phrazzld/wordsmith-api/internal/domain"
)

// Defaults applied by the HTTP layer when a query parameter is absent.
const (
	DefaultPage      = 1
	DefaultSize      = 10
	DefaultSortBy    = "id"
	DefaultDirection = "asc"
)

// MaxOffset is the largest row offset a PageRequest may address.
const MaxOffset = math.MaxInt32

// Direction is a sort order.
type Direction string

// Supported sort orders.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// PageRequest is a validated, zero-based page selection with one sort key.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction Direction
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Check rejects page selections the query layer cannot serve, including
// pages whose offset would exceed MaxOffset.
func (req PageRequest) Check() error {
	if req.Size < 1 {
		return domain.NewInvalidArgumentError("Page size must not be less than one")
	}
	if req.Page < 0 {
		return domain.NewInvalidArgumentError("Page index must not be less than zero")
	}
	if req.Page > MaxOffset/req.Size {
		return domain.NewInvalidArgumentError("Page index is too large")
	}
	return nil
}

// Normalize converts 1-based page input into a PageRequest.
//
// A nil or non-positive page selects the first page. direction must equal
// "asc" or "desc" ignoring case, and sortBy must be non-blank. size is passed
// through unchanged; bounds are enforced by the query that consumes it.
func Normalize(page *int, size int, sortBy, direction string) (PageRequest, error) {
	index := 0
	if page != nil && *page > 0 {
		index = *page - 1
	}

	var dir Direction
	switch {
	case strings.EqualFold(direction, string(Asc)):
		dir = Asc
	case strings.EqualFold(direction, string(Desc)):
		dir = Desc
	default:
		return PageRequest{}, domain.NewInvalidArgumentError("Invalid sorting direction. Use 'ASC' or 'DESC'.")
	}

	if strings.TrimSpace(sortBy) == "" {
		return PageRequest{}, domain.NewInvalidArgumentError("SortBy field cannot be null or empty.")
	}

	return PageRequest{
		Page:      index,
		Size:      size,
		SortBy:    sortBy,
		Direction: dir,
	}, nil
}
