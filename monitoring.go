package argon2kdf

import (
	"log/slog"

	"github.com/hengadev/argon2kdf/internal/monitoring"
)

// ObservabilityHook defines hooks around each derivation.
type ObservabilityHook = monitoring.ObservabilityHook

// MetricsCollector defines the interface for collecting and reporting metrics.
type MetricsCollector = monitoring.MetricsCollector

type (
	NoOpObservabilityHook      = monitoring.NoOpObservabilityHook
	LoggingObservabilityHook   = monitoring.LoggingObservabilityHook
	MetricsObservabilityHook   = monitoring.MetricsObservabilityHook
	CompositeObservabilityHook = monitoring.CompositeObservabilityHook
	NoOpMetricsCollector       = monitoring.NoOpMetricsCollector
	InMemoryMetricsCollector   = monitoring.InMemoryMetricsCollector
)

// Metric names
const (
	MetricDeriveStarted   = monitoring.MetricDeriveStarted
	MetricDeriveSucceeded = monitoring.MetricDeriveSucceeded
	MetricDeriveFailed    = monitoring.MetricDeriveFailed
	MetricDeriveDuration  = monitoring.MetricDeriveDuration
	MetricErrors          = monitoring.MetricErrors
)

// NewLoggingObservabilityHook logs derivations through logger, or
// slog.Default() when logger is nil.
func NewLoggingObservabilityHook(logger *slog.Logger) *LoggingObservabilityHook {
	return monitoring.NewLoggingObservabilityHook(logger)
}

// NewMetricsObservabilityHook records derivation counters and timings.
func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	return monitoring.NewMetricsObservabilityHook(collector)
}

// NewCompositeObservabilityHook fans every event out to hooks in order.
func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	return monitoring.NewCompositeObservabilityHook(hooks...)
}

// NewInMemoryMetricsCollector creates a collector for tests and development.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}
