package charge

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/woodtho/charge/internal/logging"
	"github.com/woodtho/charge/internal/metrics"
)

// Option configures an Allocator with optional dependencies.
type Option func(*allocatorOptions)

// allocatorOptions holds optional Allocator configuration.
type allocatorOptions struct {
	metrics    MetricsCollector
	logger     Logger
	cacheOn    bool
	cacheBound int
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	collector := charge.NewPrometheusMetrics(prometheus.DefaultRegisterer, "charge")
//	alloc, err := charge.NewAllocator(&cfg, charge.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *allocatorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (see NewZapLogger and NewSlogLogger)
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	logger := charge.NewZapLogger(zap.NewExample())
//	alloc, err := charge.NewAllocator(&cfg, charge.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *allocatorOptions) {
		o.logger = logger
	}
}

// WithResultCache turns on the result cache regardless of Config.Cache.Enabled.
//
// Parameters:
//   - maxEntries: Cache bound; values <= 0 keep Config.Cache.MaxEntries
//
// Returns:
//   - Option: Functional option for NewAllocator
//
// Example:
//
//	alloc, err := charge.NewAllocator(&cfg, charge.WithResultCache(64))
func WithResultCache(maxEntries int) Option {
	return func(o *allocatorOptions) {
		o.cacheOn = true
		o.cacheBound = maxEntries
	}
}

// NewZapLogger adapts a zap.Logger to Logger. A nil logger discards everything.
func NewZapLogger(logger *zap.Logger) Logger {
	return logging.NewZap(logger)
}

// NewSlogLogger adapts a slog.Logger to Logger. A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	return logging.NewSlog(logger)
}

// NewPrometheusMetrics returns a MetricsCollector that registers its collectors
// with reg on first use. A nil reg means prometheus.DefaultRegisterer and an
// empty namespace means "charge".
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}
