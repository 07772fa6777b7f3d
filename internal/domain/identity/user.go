package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is a team member. Users sell products and may appear as buyers.
type User struct {
	shared.TenantEntity
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsAdmin      bool
	LastLoginAt  *time.Time
}

// NewUser creates an active user with the given credentials
func NewUser(tenantID uuid.UUID, username, email, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	u := &User{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		IsActive:     true,
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return shared.Validation("Email is required")
	}
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.Validation("Invalid email format")
	}
	u.Email = email
	u.Touch()
	return nil
}

// SetName sets first and last name
func (u *User) SetName(first, last string) {
	u.FirstName = strings.TrimSpace(first)
	u.LastName = strings.TrimSpace(last)
	u.Touch()
}

// SetFlags sets the account flags
func (u *User) SetFlags(active, staff, admin bool) {
	u.IsActive = active
	u.IsStaff = staff
	u.IsAdmin = admin
	u.Touch()
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	if password == "" {
		return shared.Validation("Password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.Validation("Password cannot be used")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	return u.IsActive
}

// RecordLogin records a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// DisplayName returns "First Last" if set, otherwise the username
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.Validation("Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.Validation("Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.Validation("Username cannot exceed 100 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.Validation("Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}
