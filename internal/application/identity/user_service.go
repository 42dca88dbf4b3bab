package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"github.com/shrimpcfr/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// User management errors
var (
	ErrEmailExists      = shared.NewDomainError("ALREADY_EXISTS", "Email already exists")
	ErrCannotDeleteSelf = shared.NewDomainError("CANNOT_DELETE_SELF", "Cannot delete your own account")
	ErrCannotToggleSelf = shared.NewDomainError("CANNOT_MODIFY_SELF", "Cannot change the status of your own account")
	ErrPasswordMismatch = shared.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match")
)

// UserServiceOption configures a UserService
type UserServiceOption func(*UserService)

// WithTokenRevocation revokes a user's tokens on deactivation and password
// reset. ttl should cover the refresh token lifetime.
func WithTokenRevocation(blacklist auth.TokenBlacklist, ttl time.Duration) UserServiceOption {
	return func(s *UserService) {
		s.blacklist = blacklist
		s.revokeTTL = ttl
	}
}

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	revokeTTL time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger, opts ...UserServiceOption) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	user, err := identity.NewUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns a page of users with the total count
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := identity.UserFilter{
		Keyword:  filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Role != "" {
		role, err := identity.ParseRole(filter.Role)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Role = &role
	}
	if filter.Status != "" {
		status := identity.UserStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Status must be active or inactive")
		}
		domainFilter.Status = &status
	}

	users, total, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToUserResponses(users), total, nil
}

// Update replaces a user's name, email and role
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email, &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	if err := user.Update(req.Name, req.Email, role); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", id.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user. Users cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.revoke(ctx, id)
	s.logger.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("deleted_by", actorID.String()),
	)
	return nil
}

// ToggleStatus flips a user between active and inactive. Users cannot
// toggle themselves.
func (s *UserService) ToggleStatus(ctx context.Context, actorID, id uuid.UUID) (*UserResponse, error) {
	if actorID == id {
		return nil, ErrCannotToggleSelf
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	user.ToggleStatus()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if !user.IsActive() {
		s.revoke(ctx, id)
	}
	s.logger.Info("User status changed",
		zap.String("user_id", id.String()),
		zap.String("status", string(user.Status)),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// ResetPassword sets a new password for the user with the given email
func (s *UserService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.revoke(ctx, user.ID)
	s.logger.Info("User password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// EnsureDefaultAdmin creates the default administrator when no account
// uses its email, and restores the default password when the stored hash
// is empty.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	user, err := s.userRepo.FindByEmail(ctx, identity.DefaultAdminEmail)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		admin, err := identity.NewUser(
			identity.DefaultAdminName,
			identity.DefaultAdminEmail,
			identity.DefaultAdminPassword,
			identity.RoleAdmin,
		)
		if err != nil {
			return err
		}
		if err := s.userRepo.Save(ctx, admin); err != nil {
			return err
		}
		s.logger.Info("Default admin created", zap.String("email", admin.Email))
		return nil
	case err != nil:
		return err
	}

	if user.HasPassword() {
		return nil
	}
	if err := user.SetPassword(identity.DefaultAdminPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Warn("Default admin password restored", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *UserService) revoke(ctx context.Context, id uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, id.String(), s.revokeTTL); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.String("user_id", id.String()), zap.Error(err))
	}
}

func (s *UserService) find(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
