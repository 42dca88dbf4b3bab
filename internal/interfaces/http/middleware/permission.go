package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Logger *zap.Logger
	// OnDenied replaces the default 403 response
	OnDenied func(c *gin.Context, required string)
}

// RequirePermission allows the request when the caller's role grants
// action on module
func RequirePermission(module identity.Module, action identity.Action) gin.HandlerFunc {
	return RequirePermissionWithConfig(module, action, PermissionConfig{})
}

// RequirePermissionWithConfig is RequirePermission with custom config
func RequirePermissionWithConfig(module identity.Module, action identity.Action, cfg PermissionConfig) gin.HandlerFunc {
	required := identity.PermissionCode(module, action)

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, cfg, required, "No authentication claims found")
			return
		}

		if !identity.HasPermission(identity.Role(claims.Role), module, action) {
			handlePermissionDenied(c, cfg, required, "Role lacks required permission")
			return
		}

		c.Next()
	}
}

// RequireAuthenticated only checks that the JWT middleware accepted a token
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTClaims(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}

// HasPermission reports whether the caller may perform action on module
func HasPermission(c *gin.Context, module identity.Module, action identity.Action) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return identity.HasPermission(identity.Role(claims.Role), module, action)
}

func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, required, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, required)
		c.Abort()
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("Permission denied",
			zap.String("user_id", GetJWTUserID(c)),
			zap.String("role", GetJWTRole(c)),
			zap.String("required", required),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Access denied: insufficient permissions",
		c.GetString(RequestIDKey),
	))
}
