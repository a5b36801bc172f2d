package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      *int
		size      int
		sortBy    string
		direction string
		want      PageRequest
		wantErr   string
	}{
		{
			name: "first page", page: intPtr(1), size: 10, sortBy: "id", direction: "ASC",
			want: PageRequest{Page: 0, Size: 10, SortBy: "id", Direction: Asc},
		},
		{
			name: "zero page clamps to first", page: intPtr(0), size: 10, sortBy: "id", direction: "ASC",
			want: PageRequest{Page: 0, Size: 10, SortBy: "id", Direction: Asc},
		},
		{
			name: "negative page clamps to first", page: intPtr(-4), size: 10, sortBy: "id", direction: "asc",
			want: PageRequest{Page: 0, Size: 10, SortBy: "id", Direction: Asc},
		},
		{
			name: "nil page clamps to first", page: nil, size: 5, sortBy: "title", direction: "desc",
			want: PageRequest{Page: 0, Size: 5, SortBy: "title", Direction: Desc},
		},
		{
			name: "one based to zero based", page: intPtr(3), size: 10, sortBy: "id", direction: "ASC",
			want: PageRequest{Page: 2, Size: 10, SortBy: "id", Direction: Asc},
		},
		{
			name: "mixed case direction", page: intPtr(2), size: 20, sortBy: "createdAt", direction: "DeSc",
			want: PageRequest{Page: 1, Size: 20, SortBy: "createdAt", Direction: Desc},
		},
		{
			name: "size passed through", page: intPtr(1), size: 0, sortBy: "id", direction: "asc",
			want: PageRequest{Page: 0, Size: 0, SortBy: "id", Direction: Asc},
		},
		{
			name: "invalid direction", page: intPtr(1), size: 10, sortBy: "id", direction: "sideways",
			wantErr: "Invalid sorting direction. Use 'ASC' or 'DESC'.",
		},
		{
			name: "empty direction", page: intPtr(1), size: 10, sortBy: "id", direction: "",
			wantErr: "Invalid sorting direction. Use 'ASC' or 'DESC'.",
		},
		{
			name: "blank sort field", page: intPtr(1), size: 10, sortBy: "  ", direction: "asc",
			wantErr: "SortBy field cannot be null or empty.",
		},
		{
			name: "empty sort field", page: intPtr(1), size: 10, sortBy: "", direction: "asc",
			wantErr: "SortBy field cannot be null or empty.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(tc.page, tc.size, tc.sortBy, tc.direction)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidArgument)
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPageRequestOffsetAndCheck(t *testing.T) {
	t.Parallel()

	req := PageRequest{Page: 2, Size: 10, SortBy: "id", Direction: Asc}
	assert.Equal(t, 20, req.Offset())
	assert.NoError(t, req.Check())

	err := PageRequest{Page: 0, Size: 0}.Check()
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, "Page size must not be less than one", err.Error())
}

func TestPageRequestCheckBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     PageRequest
		wantMsg string
	}{
		{name: "first page", req: PageRequest{Page: 0, Size: 10}},
		{name: "last addressable page", req: PageRequest{Page: MaxOffset / 10, Size: 10}},
		{name: "huge size on first page", req: PageRequest{Page: 0, Size: math.MaxInt}},
		{name: "zero size", req: PageRequest{Page: 0, Size: 0}, wantMsg: "Page size must not be less than one"},
		{name: "negative page", req: PageRequest{Page: -1, Size: 10}, wantMsg: "Page index must not be less than zero"},
		{name: "offset past the bound", req: PageRequest{Page: MaxOffset/10 + 1, Size: 10}, wantMsg: "Page index is too large"},
		{name: "offset would overflow", req: PageRequest{Page: math.MaxInt - 1, Size: 10}, wantMsg: "Page index is too large"},
		{name: "huge size on second page", req: PageRequest{Page: 1, Size: math.MaxInt}, wantMsg: "Page index is too large"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.req.Check()
			if tc.wantMsg == "" {
				require.NoError(t, err)
				assert.GreaterOrEqual(t, tc.req.Offset(), 0)
				assert.LessOrEqual(t, tc.req.Offset(), MaxOffset)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestSortFields(t *testing.T) {
	t.Parallel()

	fields := NewSortFields("Post", map[string]string{"id": "id", "createdAt": "created_at"})

	clause, err := fields.OrderClause(PageRequest{SortBy: "createdAt", Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", clause)

	_, err = fields.OrderClause(PageRequest{SortBy: "password", Direction: Asc})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, "No property 'password' found for type 'Post'", err.Error())
}
