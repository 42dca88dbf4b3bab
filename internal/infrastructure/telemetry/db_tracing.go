package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	DBSystem   string // postgresql or sqlite
	LogFullSQL bool   // include bound variables in span statements
}

// NewDBTracingPlugin returns the otelgorm plugin creating one span per
// statement. Pass it to persistence.WithPlugins.
func NewDBTracingPlugin(cfg DBTracingConfig, tp trace.TracerProvider) gorm.Plugin {
	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBSystem),
		otelgorm.WithoutMetrics(),
	}
	if tp != nil {
		opts = append(opts, otelgorm.WithTracerProvider(tp))
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	return otelgorm.NewPlugin(opts...)
}
