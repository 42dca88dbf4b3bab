package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/infrastructure/auth"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@company.com"`
	Password string `json:"password" binding:"required" example:"admin123#"`
}

// RefreshTokenRequest is the body of POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the tokens to revoke on logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
	// RefreshToken is revoked too when the client sends it
	RefreshToken string
}

// ChangePasswordRequest is the body of PUT /auth/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// TokenResponse is an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

func toTokenResponse(p *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		TokenType:             p.TokenType,
	}
}

// UserInfo is the signed-in user with the permission codes of their role
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: identity.PermissionCodes(u.Role),
	}
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserInfo      `json:"user"`
}

// PermissionsResponse lists what the current role may do, per module
type PermissionsResponse struct {
	Role        string              `json:"role"`
	Permissions []string            `json:"permissions"`
	Modules     map[string][]string `json:"modules"`
}

func toPermissionsResponse(role identity.Role) PermissionsResponse {
	modules := make(map[string][]string)
	for module, actions := range identity.RolePermissions[role] {
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		modules[string(module)] = names
	}
	return PermissionsResponse{
		Role:        string(role),
		Permissions: identity.PermissionCodes(role),
		Modules:     modules,
	}
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Jane Editor"`
	Email    string `json:"email" binding:"required,email,max=200" example:"jane@company.com"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"required,oneof=admin editor viewer" example:"editor"`
}

// UpdateUserRequest is the body of PUT /users/:id
type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=200"`
	Role  string `json:"role" binding:"required,oneof=admin editor viewer"`
}

// ResetPasswordRequest is the body of POST /users/reset-password
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// UserListFilter holds the query of GET /users
type UserListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin editor viewer"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []*identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}
