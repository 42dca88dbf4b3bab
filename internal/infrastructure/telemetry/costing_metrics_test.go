package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestCostingMetrics_RecordCalculation(t *testing.T) {
	ctx := context.Background()
	reader, provider := newTestMeter(t)

	m, err := NewCostingMetrics(provider.Meter("cfr"))
	require.NoError(t, err)

	m.RecordCalculation(ctx, appcosting.KindProductCost, time.Millisecond, nil)
	m.RecordCalculation(ctx, appcosting.KindProductCost, time.Millisecond, nil)
	m.RecordCalculation(ctx, appcosting.KindSubsidy, time.Millisecond, costing.ErrInvalidQuantity)
	m.RecordCalculation(ctx, appcosting.KindDemo, time.Millisecond, errors.New("boom"))

	metrics := collect(t, reader)

	total, ok := metrics["cfr_calculations_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, total.DataPoints, 1)
	assert.Equal(t, int64(2), total.DataPoints[0].Value)
	kind, _ := total.DataPoints[0].Attributes.Value(AttrCalculationKind)
	assert.Equal(t, appcosting.KindProductCost, kind.AsString())

	failures, ok := metrics["cfr_calculation_failures_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	codes := map[string]int64{}
	for _, dp := range failures.DataPoints {
		code, _ := dp.Attributes.Value(AttrErrorCode)
		codes[code.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		costing.ErrInvalidQuantity.Code: 1,
		"INTERNAL":                      1,
	}, codes)

	hist, ok := metrics["cfr_calculation_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(4), count)
}
