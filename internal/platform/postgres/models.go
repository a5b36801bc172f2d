package postgres

import (
	"time"

	"github.com/phrazzld/wordsmith-api/internal/domain"
)

// userRow is the persisted shape of domain.User.
type userRow struct {
	ID           int64   `gorm:"primaryKey"`
	Username     string  `gorm:"size:50;not null;uniqueIndex"`
	Email        string  `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string  `gorm:"not null"`
	FirstName    string  `gorm:"size:50"`
	LastName     string  `gorm:"size:50"`
	PhoneNumber  *string `gorm:"size:20;uniqueIndex"`
	BirthDate    *time.Time
	Address      string `gorm:"size:255"`
	City         string `gorm:"size:100"`
	State        string `gorm:"size:100"`
	ZipCode      string `gorm:"size:20"`
	Country      string `gorm:"size:100"`
	Role         string `gorm:"size:20;not null"`
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func userRowFromDomain(u *domain.User) *userRow {
	row := &userRow{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BirthDate:    u.BirthDate,
		Address:      u.Address,
		City:         u.City,
		State:        u.State,
		ZipCode:      u.ZipCode,
		Country:      u.Country,
		Role:         u.Role,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	// An unset phone number is stored as NULL so the unique index ignores it.
	if u.PhoneNumber != "" {
		phone := u.PhoneNumber
		row.PhoneNumber = &phone
	}
	if row.Role == "" {
		row.Role = domain.RoleUser
	}
	return row
}

func (r *userRow) toDomain() *domain.User {
	u := &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		BirthDate:    r.BirthDate,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Country:      r.Country,
		Role:         r.Role,
		Bio:          r.Bio,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = *r.PhoneNumber
	}
	return u
}

// categoryRow is the persisted shape of domain.Category.
type categoryRow struct {
	ID          int    `gorm:"primaryKey"`
	Title       string `gorm:"size:50;not null"`
	Description string `gorm:"size:100;not null"`
}

func (categoryRow) TableName() string { return "categories" }

func categoryRowFromDomain(c *domain.Category) *categoryRow {
	return &categoryRow{ID: c.ID, Title: c.Title, Description: c.Description}
}

func (r *categoryRow) toDomain() *domain.Category {
	return &domain.Category{ID: r.ID, Title: r.Title, Description: r.Description}
}

// postRow is the persisted shape of domain.Post.
type postRow struct {
	ID         int64  `gorm:"primaryKey"`
	Title      string `gorm:"size:50;not null"`
	Content    string `gorm:"size:1000;not null"`
	UserID     int64  `gorm:"not null;index"`
	CategoryID int    `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (postRow) TableName() string { return "posts" }

func postRowFromDomain(p *domain.Post) *postRow {
	return &postRow{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		UserID:     p.UserID,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *postRow) toDomain() domain.Post {
	return domain.Post{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		UserID:     r.UserID,
		CategoryID: r.CategoryID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// commentRow is the persisted shape of domain.Comment.
type commentRow struct {
	ID        int64  `gorm:"primaryKey"`
	Content   string `gorm:"size:1000;not null"`
	PostID    int64  `gorm:"not null;index"`
	UserID    int64  `gorm:"not null;index"`
	CreatedAt time.Time
}

func (commentRow) TableName() string { return "comments" }

func commentRowFromDomain(c *domain.Comment) *commentRow {
	return &commentRow{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	}
}

func (r *commentRow) toDomain() domain.Comment {
	return domain.Comment{
		ID:        r.ID,
		Content:   r.Content,
		PostID:    r.PostID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}

// Models returns the row types in dependency order. Tests use it to build
// the schema with gorm's AutoMigrate; production uses the SQL migrations.
func Models() []any {
	return []any{&userRow{}, &categoryRow{}, &postRow{}, &commentRow{}}
}
