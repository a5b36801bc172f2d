package domain

// Category limits.
const (
	MaxCategoryTitleLength       = 50
	MaxCategoryDescriptionLength = 100
)

// Category groups posts by topic.
type Category struct {
	ID          int
	Title       string
	Description string
}

// Validate checks title and description limits.
func (c *Category) Validate() error {
	errs := &ValidationError{}
	checkText(errs, "title", "Title", c.Title, true, MaxCategoryTitleLength)
	checkText(errs, "description", "Description", c.Description, true, MaxCategoryDescriptionLength)
	return errs.OrNil()
}
