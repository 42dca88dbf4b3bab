package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/shrimpcfr/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// IsValid reports whether the status is known
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// Password cost for bcrypt
var bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Default administrator, created when the user table has no such account
const (
	DefaultAdminName     = "Admin User"
	DefaultAdminEmail    = "admin@company.com"
	DefaultAdminPassword = "admin123#"
)

// User represents a user in the system
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	Role         Role
	Status       UserStatus
	PasswordHash string
	LastLoginAt  *time.Time
}

// NewUser creates a new active user
func NewUser(name, email, password string, role Role) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             normalizeEmail(email),
		Role:              role,
		Status:            UserStatusActive,
	}
	if err := user.setPasswordHash(password); err != nil {
		return nil, err
	}
	return user, nil
}

// Update replaces name, email and role
func (u *User) Update(name, email string, role Role) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if !role.IsValid() {
		return ErrInvalidRole
	}

	u.Name = strings.TrimSpace(name)
	u.Email = normalizeEmail(email)
	u.Role = role
	u.MarkUpdated()
	return nil
}

// ChangePassword changes the user's password after checking the current one
func (u *User) ChangePassword(currentPassword, newPassword string) error {
	if !u.VerifyPassword(currentPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := u.setPasswordHash(newPassword); err != nil {
		return err
	}
	u.MarkUpdated()
	return nil
}

func (u *User) setPasswordHash(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// HasPassword reports whether a password hash is stored
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	if !u.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Activate activates the user
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.Status = UserStatusActive
	u.MarkUpdated()
	return nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() error {
	if u.Status == UserStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}
	u.Status = UserStatusInactive
	u.MarkUpdated()
	return nil
}

// ToggleStatus flips between active and inactive
func (u *User) ToggleStatus() {
	if u.IsActive() {
		u.Status = UserStatusInactive
	} else {
		u.Status = UserStatusActive
	}
	u.MarkUpdated()
}

// RecordLogin stores the login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// IsActive returns true if user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanLogin returns true if the user is active and has a password
func (u *User) CanLogin() bool {
	return u.IsActive() && u.HasPassword()
}

// Can reports whether the user's role grants action on module
func (u *User) Can(module Module, action Action) bool {
	return HasPermission(u.Role, module, action)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	// bcrypt ignores input past 72 bytes
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
