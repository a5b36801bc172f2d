package domain

import "time"

// MaxCommentContentLength bounds comment bodies.
const MaxCommentContentLength = 1000

// Comment is a reply left by a user on a post.
type Comment struct {
	ID        int64
	Content   string
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

// Validate checks the content limit and that the owning ids are set.
func (c *Comment) Validate() error {
	errs := &ValidationError{}
	checkText(errs, "content", "Content", c.Content, true, MaxCommentContentLength)
	if c.PostID <= 0 {
		errs.Add("postId", "Post id cannot be null")
	}
	if c.UserID <= 0 {
		errs.Add("userId", "User id cannot be null")
	}
	return errs.OrNil()
}
