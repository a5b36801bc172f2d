package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/wordsmith-api/internal/domain"
	"github.com/phrazzld/wordsmith-api/internal/service"
	"github.com/phrazzld/wordsmith-api/internal/service/auth"
)

// DateLayout is the wire format of calendar dates such as birth dates.
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date must use the %s layout: %w", DateLayout, err)
	}
	d.Time = t
	return nil
}

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func dateFrom(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username    string `json:"username"    validate:"notblank,max=50"`
	Email       string `json:"email"       validate:"notblank,email,max=255"`
	Password    string `json:"password"    validate:"notblank,max=72"`
	FirstName   string `json:"firstName"   validate:"omitempty,max=50"`
	LastName    string `json:"lastName"    validate:"omitempty,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
	BirthDate   *Date  `json:"birthDate"`
	Address     string `json:"address"     validate:"omitempty,max=255"`
	City        string `json:"city"        validate:"omitempty,max=100"`
	State       string `json:"state"       validate:"omitempty,max=100"`
	ZipCode     string `json:"zipCode"     validate:"omitempty,max=20"`
	Country     string `json:"country"     validate:"omitempty,max=100"`
	Bio         string `json:"bio"`
}

func (req *RegisterRequest) toInput() auth.RegisterInput {
	return auth.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   req.BirthDate.timePtr(),
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		Bio:         req.Bio,
	}
}

// AuthenticationRequest defines the payload for the login endpoint.
type AuthenticationRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// AuthenticationResponse carries the identity token issued at login.
type AuthenticationResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest defines the editable profile of a user.
type UpdateUserRequest struct {
	Email       string `json:"email"       validate:"notblank,email,max=255"`
	FirstName   string `json:"firstName"   validate:"omitempty,max=50"`
	LastName    string `json:"lastName"    validate:"omitempty,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
	BirthDate   *Date  `json:"birthDate"`
	Address     string `json:"address"     validate:"omitempty,max=255"`
	City        string `json:"city"        validate:"omitempty,max=100"`
	State       string `json:"state"       validate:"omitempty,max=100"`
	ZipCode     string `json:"zipCode"     validate:"omitempty,max=20"`
	Country     string `json:"country"     validate:"omitempty,max=100"`
	Bio         string `json:"bio"`
}

func (req *UpdateUserRequest) toInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   req.BirthDate.timePtr(),
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		Bio:         req.Bio,
	}
}

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	BirthDate   *Date  `json:"birthDate,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	Country     string `json:"country,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		BirthDate:   dateFrom(u.BirthDate),
		Address:     u.Address,
		City:        u.City,
		State:       u.State,
		ZipCode:     u.ZipCode,
		Country:     u.Country,
		Bio:         u.Bio,
	}
}

// PostRequest defines the payload for creating and updating posts.
type PostRequest struct {
	Title      string `json:"title"      validate:"notblank,max=50"`
	Content    string `json:"content"    validate:"notblank,max=1000"`
	UserID     int64  `json:"userId"     validate:"required"`
	CategoryID int    `json:"categoryId" validate:"required"`
}

func (req *PostRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:      req.Title,
		Content:    req.Content,
		UserID:     req.UserID,
		CategoryID: req.CategoryID,
	}
}

// PostResponse is the public view of a post.
type PostResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UserID     int64     `json:"userId"`
	CategoryID int       `json:"categoryId"`
}

func postToResponse(p domain.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		UserID:     p.UserID,
		CategoryID: p.CategoryID,
	}
}

// CategoryRequest defines the payload for creating and updating categories.
type CategoryRequest struct {
	Title       string `json:"title"       validate:"notblank,max=50"`
	Description string `json:"description" validate:"notblank,max=100"`
}

func (req *CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{Title: req.Title, Description: req.Description}
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Title: c.Title, Description: c.Description}
}

// CommentRequest defines the payload for creating and updating comments.
// Updates only change the content.
type CommentRequest struct {
	Content string `json:"content" validate:"notblank,max=1000"`
	PostID  int64  `json:"postId"  validate:"required"`
	UserID  int64  `json:"userId"  validate:"required"`
}

func (req *CommentRequest) toInput() service.CommentInput {
	return service.CommentInput{Content: req.Content, PostID: req.PostID, UserID: req.UserID}
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
}

func commentToResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		PostID:    c.PostID,
		UserID:    c.UserID,
	}
}

// InfoResponse describes the running API.
type InfoResponse struct {
	Version     string `json:"version"`
	Description string `json:"description"`
}

// mapSlice converts every element of in.
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
