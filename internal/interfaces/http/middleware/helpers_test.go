package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/infrastructure/auth"
	"github.com/shrimpcfr/backend/internal/infrastructure/config"
	"github.com/shrimpcfr/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "cfr-test",
		MaxRefreshCount:        10,
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role identity.Role) (*auth.TokenPair, auth.Subject) {
	t.Helper()
	sub := auth.Subject{
		UserID:      uuid.New(),
		Email:       string(role) + "@company.com",
		Role:        string(role),
		Permissions: identity.PermissionCodes(role),
	}
	pair, err := svc.GenerateTokenPair(sub)
	require.NoError(t, err)
	return pair, sub
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
