package handler

import (
	"net/http"
	"testing"

	appidentity "github.com/shrimpcfr/backend/internal/application/identity"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)

	t.Run("default admin", func(t *testing.T) {
		out := env.login(t, identity.DefaultAdminEmail, identity.DefaultAdminPassword)

		assert.NotEmpty(t, out.Token.AccessToken)
		assert.NotEmpty(t, out.Token.RefreshToken)
		assert.Equal(t, "Bearer", out.Token.TokenType)
		assert.Equal(t, "admin", out.User.Role)
		assert.Contains(t, out.User.Permissions, "users:delete")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    identity.DefaultAdminEmail,
			"password": "nope",
		})

		resp := requireError(t, rec, http.StatusUnauthorized, dto.ErrCodeInvalidCredentials)
		assert.Equal(t, "Invalid email or password", resp.Error.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})

		resp := requireError(t, rec, http.StatusBadRequest, dto.ErrCodeValidation)
		fields := make([]string, len(resp.Error.Details))
		for i, d := range resp.Error.Details {
			fields[i] = d.Field
		}
		assert.ElementsMatch(t, []string{"email", "password"}, fields)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":`)

		requireError(t, rec, http.StatusBadRequest, dto.ErrCodeInvalidJSON)
	})

	t.Run("deactivated account", func(t *testing.T) {
		user, _ := env.createUser(t, "gone@company.com", identity.RoleViewer)
		rec := env.do(t, http.MethodPatch, "/api/v1/users/"+user.ID.String()+"/status", env.adminToken(t), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "gone@company.com",
			"password": "secret123",
		})

		requireError(t, rec, http.StatusForbidden, dto.ErrCodeAccountDeactivated)
	})
}

func TestAuthHandler_MeAndPermissions(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "viewer@company.com", identity.RoleViewer)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me appidentity.UserInfo
	decodeData(t, rec, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, "viewer", me.Role)
	assert.NotContains(t, me.Permissions, "products:create")

	rec = env.do(t, http.MethodGet, "/api/v1/auth/permissions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var perms appidentity.PermissionsResponse
	decodeData(t, rec, &perms)
	assert.Equal(t, "viewer", perms.Role)
	assert.ElementsMatch(t, []string{"read", "calculate"}, perms.Modules["calculator"])
	assert.NotContains(t, perms.Modules, "users")
}

func TestAuthHandler_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)

	requireError(t, rec, http.StatusUnauthorized, dto.ErrCodeTokenInvalid)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	out := env.login(t, identity.DefaultAdminEmail, identity.DefaultAdminPassword)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", out.Token.AccessToken, map[string]string{
		"refresh_token": out.Token.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", out.Token.AccessToken, nil)
	requireError(t, rec, http.StatusUnauthorized, dto.ErrCodeTokenRevoked)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": out.Token.RefreshToken,
	})
	requireError(t, rec, http.StatusUnauthorized, dto.ErrCodeTokenRevoked)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	env := newTestEnv(t)
	out := env.login(t, identity.DefaultAdminEmail, identity.DefaultAdminPassword)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
		"refresh_token": out.Token.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var pair appidentity.TokenResponse
	decodeData(t, rec, &pair)
	assert.NotEmpty(t, pair.AccessToken)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("access token is not a refresh token", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{
			"refresh_token": out.Token.AccessToken,
		})
		requireError(t, rec, http.StatusUnauthorized, dto.ErrCodeTokenInvalid)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "editor@company.com", identity.RoleEditor)

	t.Run("mismatch", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/auth/password", token, map[string]string{
			"current_password": "secret123",
			"new_password":     "another1",
			"confirm_password": "another2",
		})
		resp := requireError(t, rec, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.Equal(t, "New passwords do not match", resp.Error.Message)
	})

	t.Run("wrong current password", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/auth/password", token, map[string]string{
			"current_password": "wrong-one",
			"new_password":     "another1",
			"confirm_password": "another1",
		})
		resp := requireError(t, rec, http.StatusBadRequest, dto.ErrCodeInvalidPassword)
		assert.Equal(t, "Current password is incorrect", resp.Error.Message)
	})

	t.Run("success revokes the current token", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/auth/password", token, map[string]string{
			"current_password": "secret123",
			"new_password":     "another1",
			"confirm_password": "another1",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
		requireError(t, rec, http.StatusUnauthorized, dto.ErrCodeTokenRevoked)
	})
}
