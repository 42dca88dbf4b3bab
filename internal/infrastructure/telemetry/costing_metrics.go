package telemetry

import (
	"context"
	"errors"
	"time"

	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var _ appcosting.CalculationRecorder = (*CostingMetrics)(nil)

// Attribute keys on costing metrics
var (
	AttrCalculationKind = attribute.Key("calculation.kind")
	AttrOutcome         = attribute.Key("outcome")
	AttrErrorCode       = attribute.Key("error.code")
)

// CostingMetrics counts calculator runs and their durations.
type CostingMetrics struct {
	calculations *Counter
	failures     *Counter
	duration     *Histogram
}

// NewCostingMetrics creates the calculator instruments on the given meter
func NewCostingMetrics(meter metric.Meter) (*CostingMetrics, error) {
	calculations, err := NewCounter(meter,
		"cfr_calculations_total",
		"Number of successful cost calculations",
		"{calculation}",
	)
	if err != nil {
		return nil, err
	}

	failures, err := NewCounter(meter,
		"cfr_calculation_failures_total",
		"Number of rejected cost calculations",
		"{calculation}",
	)
	if err != nil {
		return nil, err
	}

	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "cfr_calculation_duration_seconds",
		Description: "Duration of cost calculations",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &CostingMetrics{
		calculations: calculations,
		failures:     failures,
		duration:     duration,
	}, nil
}

// RecordCalculation implements appcosting.CalculationRecorder
func (m *CostingMetrics) RecordCalculation(ctx context.Context, kind string, duration time.Duration, err error) {
	kindAttr := AttrCalculationKind.String(kind)

	if err != nil {
		code := "INTERNAL"
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			code = domainErr.Code
		}
		m.failures.Inc(ctx, kindAttr, AttrErrorCode.String(code))
		m.duration.RecordDuration(ctx, duration, kindAttr, AttrOutcome.String("error"))
		return
	}

	m.calculations.Inc(ctx, kindAttr)
	m.duration.RecordDuration(ctx, duration, kindAttr, AttrOutcome.String("success"))
}
