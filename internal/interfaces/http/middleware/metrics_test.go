package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupTestMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})
	return mp, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) *metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestHTTPMetrics(t *testing.T) {
	mp, reader := setupTestMeter(t)
	svc := newTestJWTService()
	pair, _ := issueToken(t, svc, identity.RoleViewer)

	metrics, err := HTTPMetrics(mp.Meter("http.server"))
	require.NoError(t, err)

	router := gin.New()
	router.Use(metrics)
	api := router.Group("/api/v1", JWTAuthMiddleware(svc))
	api.POST("/calculator/cfr", func(c *gin.Context) { c.String(http.StatusOK, `{"ok":true}`) })

	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/calculator/cfr", strings.NewReader(`{"bdt_cost":"1617.67"}`))
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	total := findMetric(t, reader, "http_server_request_total")
	require.NotNil(t, total)
	sum, ok := total.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("http.route"))
		counts[route.AsString()] += dp.Value
		if route.AsString() == "/api/v1/calculator/cfr" {
			role, _ := dp.Attributes.Value(attribute.Key("user.role"))
			assert.Equal(t, "viewer", role.AsString())
		}
	}
	assert.Equal(t, int64(3), counts["/api/v1/calculator/cfr"])
	assert.Equal(t, int64(1), counts["unknown"])

	duration := findMetric(t, reader, "http_server_request_duration_seconds")
	require.NotNil(t, duration)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var observed uint64
	for _, dp := range hist.DataPoints {
		observed += dp.Count
	}
	assert.Equal(t, uint64(4), observed)

	assert.NotNil(t, findMetric(t, reader, "http_server_request_size_bytes"))
	assert.NotNil(t, findMetric(t, reader, "http_server_active_requests"))
}
