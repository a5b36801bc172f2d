package paging

import "github.com/phrazzld/wordsmith-api/internal/domain"

// SortFields maps the property names clients may sort by onto storage columns.
type SortFields struct {
	entity  string
	columns map[string]string
}

// NewSortFields declares the sortable properties of an entity.
func NewSortFields(entity string, columns map[string]string) SortFields {
	return SortFields{entity: entity, columns: columns}
}

// Column resolves a property name to its column.
func (s SortFields) Column(property string) (string, error) {
	column, ok := s.columns[property]
	if !ok {
		return "", domain.NewInvalidArgumentError("No property '%s' found for type '%s'", property, s.entity)
	}
	return column, nil
}

// OrderClause renders "column ASC|DESC" for the request.
func (s SortFields) OrderClause(req PageRequest) (string, error) {
	column, err := s.Column(req.SortBy)
	if err != nil {
		return "", err
	}
	return column + " " + string(req.Direction), nil
}
