package handler

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
	"github.com/shopspring/decimal"
	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	appidentity "github.com/shrimpcfr/backend/internal/application/identity"
	"github.com/shrimpcfr/backend/internal/application/report"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/infrastructure/auth"
	"github.com/shrimpcfr/backend/internal/infrastructure/config"
	"github.com/shrimpcfr/backend/internal/infrastructure/export"
	"github.com/shrimpcfr/backend/internal/infrastructure/persistence"
	"github.com/shrimpcfr/backend/internal/interfaces/http/dto"
	"github.com/shrimpcfr/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv is a gin engine over real services and an in-memory sqlite
// database seeded with the factory data and the default admin
type testEnv struct {
	engine    *gin.Engine
	db        *persistence.Database
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	users     *appidentity.UserService
	auth      *appidentity.AuthService
	products  *appcosting.ProductService
	rates     *appcosting.RateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(ctx))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "cfr-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	userRepo := persistence.NewGormUserRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	constantsRepo := persistence.NewGormConstantsRepository(db.DB)

	userService := appidentity.NewUserService(userRepo, nil,
		appidentity.WithTokenRevocation(blacklist, jwtService.RefreshTokenExpiration()))
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, nil)
	rateService := appcosting.NewRateService(rateRepo)
	productService := appcosting.NewProductService(productRepo)
	constantsService := appcosting.NewConstantsService(constantsRepo, nil)
	calculator := appcosting.NewCalculatorService(productRepo, rateService, constantsService)
	reports := report.NewProductionReportService(productRepo, rateService, constantsService, nil,
		report.WithRenderer(export.NewPDFRenderer()),
		report.WithRenderer(export.NewXLSXRenderer()),
	)

	_, err = persistence.NewSeeder(rateRepo, productRepo, constantsRepo, userService, nil).Seed(ctx)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      []string{"/api/v1/auth/login", "/api/v1/auth/refresh"},
	}))

	authH := NewAuthHandler(authService)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/refresh", authH.RefreshToken)
	api.POST("/auth/logout", authH.Logout)
	api.GET("/auth/me", authH.Me)
	api.GET("/auth/permissions", authH.Permissions)
	api.PUT("/auth/password", authH.ChangePassword)

	userH := NewUserHandler(userService)
	api.GET("/users", userH.List)
	api.POST("/users", userH.Create)
	api.POST("/users/reset-password", userH.ResetPassword)
	api.GET("/users/:id", userH.GetByID)
	api.PUT("/users/:id", userH.Update)
	api.DELETE("/users/:id", userH.Delete)
	api.PATCH("/users/:id/status", userH.ToggleStatus)

	rateH := NewRateHandler(rateService)
	api.GET("/rates", rateH.List)
	api.POST("/rates", rateH.Create)
	api.GET("/rates/lookup", rateH.Lookup)
	api.GET("/rates/:id", rateH.GetByID)
	api.PUT("/rates/:id", rateH.Update)
	api.DELETE("/rates/:id", rateH.Delete)

	productH := NewProductHandler(productService)
	api.GET("/products", productH.List)
	api.POST("/products", productH.Create)
	api.GET("/products/:id", productH.GetByID)
	api.PUT("/products/:id", productH.Update)
	api.DELETE("/products/:id", productH.Delete)
	api.PATCH("/products/:id/status", productH.ToggleStatus)

	constantsH := NewConstantsHandler(constantsService)
	api.GET("/constants", constantsH.Get)
	api.PUT("/constants", constantsH.Update)
	api.POST("/constants/reset", constantsH.Reset)

	calcH := NewCalculatorHandler(calculator)
	api.POST("/calculator/product-cost", calcH.ProductCost)
	api.POST("/calculator/reference-cost", calcH.ReferenceCost)
	api.POST("/calculator/cfr", calcH.FinalCFR)
	api.POST("/calculator/subsidy", calcH.Subsidy)
	api.POST("/calculator/subsidy/batch", calcH.SubsidyBatch)
	api.POST("/calculator/subsidy/validate", calcH.ValidateSubsidy)
	api.POST("/demo/costing", calcH.Demo)

	reportH := NewReportHandler(reports)
	api.GET("/reports/production", reportH.Production)
	api.GET("/reports/production/export", reportH.Export)

	return &testEnv{
		engine:    engine,
		db:        db,
		jwt:       jwtService,
		blacklist: blacklist,
		users:     userService,
		auth:      authService,
		products:  productService,
		rates:     rateService,
	}
}

// login signs in and returns the login payload
func (e *testEnv) login(t *testing.T, email, password string) appidentity.LoginResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out appidentity.LoginResponse
	decodeData(t, rec, &out)
	return out
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	return e.login(t, identity.DefaultAdminEmail, identity.DefaultAdminPassword).Token.AccessToken
}

// createUser creates a user with the given role and returns its token
func (e *testEnv) createUser(t *testing.T, email string, role identity.Role) (appidentity.UserResponse, string) {
	t.Helper()
	user, err := e.users.Create(context.Background(), appidentity.CreateUserRequest{
		Name:     "Test " + string(role),
		Email:    email,
		Password: "secret123",
		Role:     string(role),
	})
	require.NoError(t, err)
	return *user, e.login(t, email, "secret123").Token.AccessToken
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

// decodeData unmarshals the data field of the envelope into out
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.True(t, envelope.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) dto.Response {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
	return resp
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}
