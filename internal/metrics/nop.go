package metrics

import "github.com/woodtho/charge/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Used when the Allocator is created without WithMetrics.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	metrics := metrics.NewNop()
//	alloc, err := charge.NewAllocator(cfg, charge.WithMetrics(metrics))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordAllocationDuration discards the allocation duration metric.
func (n *NopMetrics) RecordAllocationDuration(_ /* duration */ float64) {
	// No-op
}

// RecordAllocationAttempt discards the allocation attempt metric.
func (n *NopMetrics) RecordAllocationAttempt(_ /* success */ bool) {
	// No-op
}

// RecordPhaseRooms discards the per-phase room count.
func (n *NopMetrics) RecordPhaseRooms(_ /* phase */ string, _ /* count */ int) {
	// No-op
}

// RecordCacheLookup discards the cache lookup metric.
func (n *NopMetrics) RecordCacheLookup(_ /* hit */ bool) {
	// No-op
}
