package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_EnrichedSpan(t *testing.T) {
	sr := setupTestTracer(t)
	svc := newTestJWTService()
	pair, sub := issueToken(t, svc, identity.RoleEditor)

	router := gin.New()
	router.Use(RequestID(), TracingWithConfig(TracingConfig{
		Enabled:     true,
		ServiceName: "cfr-test",
		SkipPaths:   []string{"/health"},
	}), SpanEnricher())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	api := router.Group("/api/v1", JWTAuthMiddleware(svc))
	api.GET("/products/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	router.ServeHTTP(httptest.NewRecorder(), req)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1, "health probe is not traced")
	span := spans[0]
	assert.Equal(t, "GET /api/v1/products/:id", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "Not Found", span.Status().Description)

	attrs := spanAttrs(span)
	assert.Equal(t, "req-7", attrs["request_id"].AsString())
	assert.Equal(t, sub.UserID.String(), attrs["user_id"].AsString())
	assert.Equal(t, "editor", attrs["user.role"].AsString())
}

func TestMarkSpanStatus_Success(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "cfr-test"}), SpanEnricher())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}
