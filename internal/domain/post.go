package domain

import "time"

// Post limits.
const (
	MaxPostTitleLength   = 50
	MaxPostContentLength = 1000
)

// Post is a blog article written by a user within a category.
type Post struct {
	ID         int64
	Title      string
	Content    string
	UserID     int64
	CategoryID int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks title and content limits and that the owning ids are set.
func (p *Post) Validate() error {
	errs := &ValidationError{}
	checkText(errs, "title", "Title", p.Title, true, MaxPostTitleLength)
	checkText(errs, "content", "Content", p.Content, true, MaxPostContentLength)
	if p.UserID <= 0 {
		errs.Add("userId", "User id cannot be null")
	}
	if p.CategoryID <= 0 {
		errs.Add("categoryId", "Category id cannot be null")
	}
	return errs.OrNil()
}
