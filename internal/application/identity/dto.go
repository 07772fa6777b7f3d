package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Login    string // username or email
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	TokenType   string       `json:"tokenType"`
	User        UserResponse `json:"user"`
}

// LogoutInput identifies the token being revoked
type LogoutInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	JTI      string
	TTL      time.Duration // remaining token lifetime
}

// CreateUserRequest is the payload for creating a team member
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	IsActive  *bool  `json:"isActive"`
	IsStaff   bool   `json:"isStaff"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UpdateUserRequest is the payload for updating a team member.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	IsActive  *bool   `json:"isActive"`
	IsStaff   *bool   `json:"isStaff"`
	IsAdmin   *bool   `json:"isAdmin"`
}

// UserResponse represents a user in API responses. The password hash never leaves the service.
type UserResponse struct {
	ID          uuid.UUID  `json:"_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	IsActive    bool       `json:"isActive"`
	IsStaff     bool       `json:"isStaff"`
	IsAdmin     bool       `json:"isAdmin"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToUserResponse converts a domain User
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsAdmin:     u.IsAdmin,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
