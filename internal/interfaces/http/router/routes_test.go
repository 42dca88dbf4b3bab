package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	appidentity "github.com/shrimpcfr/backend/internal/application/identity"
	"github.com/shrimpcfr/backend/internal/application/report"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/infrastructure/auth"
	"github.com/shrimpcfr/backend/internal/infrastructure/config"
	"github.com/shrimpcfr/backend/internal/infrastructure/export"
	"github.com/shrimpcfr/backend/internal/infrastructure/persistence"
	"github.com/shrimpcfr/backend/internal/interfaces/http/dto"
	"github.com/shrimpcfr/backend/internal/interfaces/http/handler"
	"github.com/shrimpcfr/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	engine *gin.Engine
	users  *appidentity.UserService
}

func newAPI(t *testing.T, authMiddleware ...gin.HandlerFunc) *api {
	t.Helper()
	ctx := context.Background()
	middleware.SetupValidator()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(ctx))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-at-least-32-chars",
		RefreshSecret:          "router-test-refresh-secret-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "cfr-test",
		MaxRefreshCount:        3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	userRepo := persistence.NewGormUserRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	constantsRepo := persistence.NewGormConstantsRepository(db.DB)

	users := appidentity.NewUserService(userRepo, nil,
		appidentity.WithTokenRevocation(blacklist, jwtService.RefreshTokenExpiration()))
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, nil)
	rates := appcosting.NewRateService(rateRepo)
	products := appcosting.NewProductService(productRepo)
	constants := appcosting.NewConstantsService(constantsRepo, nil)
	calculator := appcosting.NewCalculatorService(productRepo, rates, constants)
	reports := report.NewProductionReportService(productRepo, rates, constants, nil,
		report.WithRenderer(export.NewPDFRenderer()))

	_, err = persistence.NewSeeder(rateRepo, productRepo, constantsRepo, users, nil).Seed(ctx)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	r := NewRouter(engine, WithMiddleware(
		middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			SkipPaths:      []string{"/api/v1/health", "/api/v1/auth/login", "/api/v1/auth/refresh"},
		}),
	))
	for _, g := range APIGroups(Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(users),
		Rate:       handler.NewRateHandler(rates),
		Product:    handler.NewProductHandler(products),
		Constants:  handler.NewConstantsHandler(constants),
		Calculator: handler.NewCalculatorHandler(calculator),
		Report:     handler.NewReportHandler(reports),
		System:     handler.NewSystemHandler("cfr-test", "0.0.0", db),
	}, authMiddleware...) {
		r.Register(g)
	}
	r.Setup()

	return &api{engine: engine, users: users}
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *api) token(t *testing.T, email, password string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Data appidentity.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Data.Token.AccessToken
}

func (a *api) tokenFor(t *testing.T, role identity.Role) string {
	t.Helper()
	if role == identity.RoleAdmin {
		return a.token(t, identity.DefaultAdminEmail, identity.DefaultAdminPassword)
	}
	email := string(role) + "@company.com"
	_, err := a.users.Create(context.Background(), appidentity.CreateUserRequest{
		Name:     "Test " + string(role),
		Email:    email,
		Password: "secret123",
		Role:     string(role),
	})
	require.NoError(t, err)
	return a.token(t, email, "secret123")
}

func TestAPIGroups_PermissionMatrix(t *testing.T) {
	a := newAPI(t)
	tokens := map[identity.Role]string{
		identity.RoleAdmin:  a.tokenFor(t, identity.RoleAdmin),
		identity.RoleEditor: a.tokenFor(t, identity.RoleEditor),
		identity.RoleViewer: a.tokenFor(t, identity.RoleViewer),
	}
	missing := "/" + uuid.NewString()

	tests := []struct {
		name   string
		role   identity.Role
		method string
		path   string
		body   any
		want   int
	}{
		{"viewer lists products", identity.RoleViewer, http.MethodGet, "/api/v1/products", nil, http.StatusOK},
		{"viewer cannot create products", identity.RoleViewer, http.MethodPost, "/api/v1/products", map[string]any{}, http.StatusForbidden},
		{"viewer cannot update constants", identity.RoleViewer, http.MethodPut, "/api/v1/constants", map[string]any{}, http.StatusForbidden},
		{"viewer cannot export reports", identity.RoleViewer, http.MethodGet, "/api/v1/reports/production/export?format=pdf", nil, http.StatusForbidden},
		{"viewer reads reports", identity.RoleViewer, http.MethodGet, "/api/v1/reports/production", nil, http.StatusOK},
		{"viewer calculates", identity.RoleViewer, http.MethodPost, "/api/v1/calculator/subsidy", map[string]any{"pre_subsidy_cost": "5.00"}, http.StatusOK},
		{"viewer runs the demo", identity.RoleViewer, http.MethodPost, "/api/v1/demo/costing", map[string]any{
			"size_range": "14-20", "glazing": "80", "reference_weight": "855",
		}, http.StatusOK},
		{"viewer cannot list users", identity.RoleViewer, http.MethodGet, "/api/v1/users", nil, http.StatusForbidden},
		{"editor looks up rates", identity.RoleEditor, http.MethodGet, "/api/v1/rates/lookup?quantity=15", nil, http.StatusOK},
		{"editor cannot delete products", identity.RoleEditor, http.MethodDelete, "/api/v1/products" + missing, nil, http.StatusForbidden},
		{"editor cannot delete rates", identity.RoleEditor, http.MethodDelete, "/api/v1/rates" + missing, nil, http.StatusForbidden},
		{"editor cannot reset passwords", identity.RoleEditor, http.MethodPost, "/api/v1/users/reset-password", map[string]any{}, http.StatusForbidden},
		{"editor exports reports", identity.RoleEditor, http.MethodGet, "/api/v1/reports/production/export?format=pdf", nil, http.StatusOK},
		{"admin reaches product delete", identity.RoleAdmin, http.MethodDelete, "/api/v1/products" + missing, nil, http.StatusNotFound},
		{"admin lists users", identity.RoleAdmin, http.MethodGet, "/api/v1/users", nil, http.StatusOK},
		{"any role reads its permissions", identity.RoleViewer, http.MethodGet, "/api/v1/auth/permissions", nil, http.StatusOK},
		{"any role reads system info", identity.RoleViewer, http.MethodGet, "/api/v1/system/info", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, tt.method, tt.path, tokens[tt.role], tt.body)
			require.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want == http.StatusForbidden {
				var resp dto.Response
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
			}
		})
	}
}

func TestAPIGroups_Authentication(t *testing.T) {
	a := newAPI(t)

	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/products", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodPost, "/api/v1/calculator/cfr", "garbage", map[string]any{}).Code)
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/v1/health", "", nil).Code)
}

func TestAPIGroups_AuthMiddlewareScope(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	a := newAPI(t, middleware.RateLimit(limiter))

	token := a.tokenFor(t, identity.RoleAdmin)

	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    identity.DefaultAdminEmail,
		"password": identity.DefaultAdminPassword,
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// other groups are outside the auth limiter
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/v1/rates", token, nil).Code)
	}
}
