// Package identity implements sign-in, token lifecycle and user management.
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

// Authentication errors
var (
	ErrInvalidCredentials  = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrAccountDeactivated  = shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	ErrPasswordNotSet      = shared.NewDomainError("PASSWORD_NOT_SET", "User password not found. Please contact administrator.")
	ErrTokenExpired        = shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	ErrTokenInvalid        = shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	ErrTokenMaxRefresh     = shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	ErrTokenRevoked        = shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	ErrNewPasswordMismatch = shared.NewDomainError("PASSWORD_MISMATCH", "New passwords do not match")
	ErrUserNotFound        = shared.NewDomainError("NOT_FOUND", "User not found")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
		now:        time.Now,
	}
}

// Login authenticates a user by email and password and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown email", zap.String("email", req.Email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountDeactivated
	}
	if !user.HasPassword() {
		s.logger.Warn("Login attempt for account without password", zap.String("user_id", user.ID.String()))
		return nil, ErrPasswordNotSet
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(subject(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	user.RecordLogin(s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the login itself succeeded
		s.logger.Error("Failed to record last login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &LoginResponse{
		Token: toTokenResponse(pair),
		User:  toUserInfo(user),
	}, nil
}

// RefreshToken exchanges a refresh token for a new pair. The role and
// permissions are reloaded so that changes apply without a new login.
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, ErrAccountDeactivated
	}

	pair, err := s.jwtService.RefreshTokenPair(claims, subject(user))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	// the old refresh token is single use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	resp := toTokenResponse(pair)
	return &resp, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return ErrTokenRevoked
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAtTime())
	if err != nil {
		return err
	}
	if invalidated {
		return ErrTokenRevoked
	}
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrTokenMaxRefresh
	default:
		return ErrTokenInvalid
	}
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			return err
		}
	}

	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err == nil && claims.UserID == input.UserID.String() {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
				return err
			}
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// Me returns the current user with the permissions of their role
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// Permissions returns the permission table entry of the current user's role
func (s *AuthService) Permissions(ctx context.Context, userID uuid.UUID) (*PermissionsResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toPermissionsResponse(user.Role)
	return &resp, nil
}

// ChangePassword changes the caller's password and invalidates every token
// issued to them before now, including the one used for this request.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, tokenJTI string, req ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrNewPasswordMismatch
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	ttl := s.jwtService.RefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), ttl); err != nil {
		s.logger.Error("Failed to invalidate tokens after password change", zap.Error(err))
	}
	if tokenJTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, tokenJTI, s.jwtService.AccessTokenExpiration()); err != nil {
			s.logger.Error("Failed to revoke current token", zap.Error(err))
		}
	}

	s.logger.Info("User password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) findUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func subject(u *identity.User) auth.Subject {
	return auth.Subject{
		UserID:      u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: identity.PermissionCodes(u.Role),
	}
}
