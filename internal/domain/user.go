package domain

import "time"

// Roles a user can hold. The role doubles as the single authority carried in
// identity tokens.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered account and its profile.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	BirthDate    *time.Time
	Address      string
	City         string
	State        string
	ZipCode      string
	Country      string
	Role         string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Authorities returns the authority strings granted to the user.
func (u *User) Authorities() []string {
	if u.Role == "" {
		return []string{RoleUser}
	}
	return []string{u.Role}
}

// Validate checks the fields the store relies on. now is used for the
// birth date check.
func (u *User) Validate(now time.Time) error {
	errs := &ValidationError{}
	checkText(errs, "username", "Username", u.Username, true, 50)
	checkEmail(errs, "email", u.Email)
	if u.PasswordHash == "" {
		errs.Add("password", "Password cannot be blank")
	}
	if u.BirthDate != nil && !u.BirthDate.Before(now) {
		errs.Add("birthDate", "Birth date must be in the past")
	}
	return errs.OrNil()
}
