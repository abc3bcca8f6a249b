// Package types provides the shared data model and interfaces for the charge library.
//
// The types live in their own package so that the internal engine packages and the
// root charge package can share them without import cycles.
//
// Key types:
//   - RoomRecord: A validated, time-resolved occupied room (engine input)
//   - EnrichedRoom: A RoomRecord plus derived workload, load, group and hash values
//   - NurseState: Mutable per-run bookkeeping for one nurse
//   - Result: Assignment map plus the per-room and per-nurse views
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
