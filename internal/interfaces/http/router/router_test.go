package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func text(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var order []string
	r := NewRouter(engine, WithMiddleware(func(c *gin.Context) {
		order = append(order, "api")
		c.Next()
	}))

	g := NewDomainGroup("rates", "/rates").Use(func(c *gin.Context) {
		order = append(order, "group")
		c.Next()
	})
	g.GET("", func(c *gin.Context) {
		order = append(order, "handler")
		c.String(http.StatusOK, "rates")
	})
	r.Register(g)

	api := r.Setup()
	require.NotNil(t, api)

	w := serve(engine, http.MethodGet, "/api/v1/rates")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rates", w.Body.String())
	assert.Equal(t, []string{"api", "group", "handler"}, order)

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/rates").Code)
}

func TestDomainGroup(t *testing.T) {
	g := NewDomainGroup("products", "/products")
	g.GET("", text("list"))
	g.POST("", text("create"))
	g.PUT("/:id", text("update"))
	g.PATCH("/:id/status", text("toggle"))
	g.DELETE("/:id", text("delete"))

	assert.Equal(t, "products", g.Name())
	assert.Equal(t, "/products", g.Prefix())
	require.Len(t, g.Routes(), 5)
	assert.Equal(t, http.MethodPatch, g.Routes()[3].Method)
	assert.Equal(t, "/:id/status", g.Routes()[3].Path)

	engine := gin.New()
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/products", "list"},
		{http.MethodPost, "/api/v1/products", "create"},
		{http.MethodPut, "/api/v1/products/42", "update"},
		{http.MethodPatch, "/api/v1/products/42/status", "toggle"},
		{http.MethodDelete, "/api/v1/products/42", "delete"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestDomainGroup_Nested(t *testing.T) {
	calc := NewDomainGroup("calculator", "/calculator")
	subsidy := calc.Group("subsidy", "/subsidy").Use(func(c *gin.Context) {
		c.Header("X-Group", "subsidy")
		c.Next()
	})
	subsidy.POST("/batch", text("batch"))
	calc.POST("/cfr", text("cfr"))

	engine := gin.New()
	calc.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodPost, "/api/v1/calculator/subsidy/batch")
	assert.Equal(t, "batch", w.Body.String())
	assert.Equal(t, "subsidy", w.Header().Get("X-Group"))

	w = serve(engine, http.MethodPost, "/api/v1/calculator/cfr")
	assert.Equal(t, "cfr", w.Body.String())
	assert.Empty(t, w.Header().Get("X-Group"))
}

func TestDomainGroup_MiddlewareAbort(t *testing.T) {
	g := NewDomainGroup("reports", "/reports").Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusForbidden)
	})
	g.GET("/production", text("report"))

	engine := gin.New()
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/reports/production")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())
}
