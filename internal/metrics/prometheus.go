package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/woodtho/charge/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered on first use, so constructing one that is
// never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	allocDuration prometheus.Histogram
	allocAttempts *prometheus.CounterVec
	phaseRooms    *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "charge" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "charge"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.allocDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "duration_seconds",
			Help:      "Wall time of allocation runs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs .. ~200ms
		})

		p.allocAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "runs_total",
			Help:      "Total allocation runs by result (success,failure).",
		}, []string{"result"})

		p.phaseRooms = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocator",
			Name:      "phase_rooms",
			Help:      "Rooms placed per phase per run.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"phase"})

		p.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Result cache lookups by outcome (hit,miss).",
		}, []string{"outcome"})

		p.reg.MustRegister(p.allocDuration)
		p.reg.MustRegister(p.allocAttempts)
		p.reg.MustRegister(p.phaseRooms)
		p.reg.MustRegister(p.cacheLookups)
	})
}

// RecordAllocationDuration observes the duration (seconds) of one run.
func (p *PrometheusCollector) RecordAllocationDuration(duration float64) {
	p.ensureRegistered()
	p.allocDuration.Observe(duration)
}

// RecordAllocationAttempt counts a run by result.
func (p *PrometheusCollector) RecordAllocationAttempt(success bool) {
	p.ensureRegistered()
	if success {
		p.allocAttempts.WithLabelValues("success").Inc()
	} else {
		p.allocAttempts.WithLabelValues("failure").Inc()
	}
}

// RecordPhaseRooms observes the number of rooms a phase placed.
func (p *PrometheusCollector) RecordPhaseRooms(phase string, count int) {
	p.ensureRegistered()
	p.phaseRooms.WithLabelValues(phase).Observe(float64(count))
}

// RecordCacheLookup counts a cache lookup by outcome.
func (p *PrometheusCollector) RecordCacheLookup(hit bool) {
	p.ensureRegistered()
	if hit {
		p.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		p.cacheLookups.WithLabelValues("miss").Inc()
	}
}
