package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg SwaggerConfig, auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func swaggerRequest(router *gin.Engine, remote, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remote
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rec := swaggerRequest(swaggerRouter(SwaggerConfig{}, nil), "127.0.0.1:1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("open", func(t *testing.T) {
		rec := swaggerRequest(swaggerRouter(SwaggerConfig{Enabled: true}, nil), "127.0.0.1:1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "docs", rec.Body.String())
	})

	t.Run("ip whitelist", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "192.168.1.5"}}, nil)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "10.1.2.3:1", "").Code)
		assert.Equal(t, http.StatusOK, swaggerRequest(router, "192.168.1.5:1", "").Code)
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "172.16.0.1:1", "").Code)
	})

	t.Run("require auth", func(t *testing.T) {
		svc := newTestJWTService()
		cfg := DefaultJWTConfig(svc)
		cfg.SkipPathPrefixes = nil
		router := swaggerRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, JWTAuthMiddlewareWithConfig(cfg))
		pair, _ := issueToken(t, svc, identity.RoleViewer)

		assert.Equal(t, http.StatusUnauthorized, swaggerRequest(router, "127.0.0.1:1", "").Code)
		rec := swaggerRequest(router, "127.0.0.1:1", pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "docs", rec.Body.String())
	})
}

func TestIsIPAllowed(t *testing.T) {
	_, network, _ := net.ParseCIDR("10.0.0.0/8")

	assert.True(t, isIPAllowed(net.ParseIP("10.9.9.9"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(nil, nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(net.ParseIP("11.0.0.1"), []net.IP{net.ParseIP("11.0.0.2")}, nil))
}
