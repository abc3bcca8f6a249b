// Package publish stores allocation results in a NATS JetStream key-value bucket.
//
// Each roster key (for example "2026-10-16.day") holds the latest Snapshot of one
// shift's allocation. Ward displays read it with Latest or follow it with Watch.
// A Refresher keeps a roster current by re-running the allocation on an interval.
package publish
