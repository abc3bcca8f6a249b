// Package testing provides test utilities for the charge library.
//
// Key utilities:
//   - StartBroker: In-process JetStream server; RosterBucket creates roster
//     buckets on it and Stop simulates an outage
//   - NewTestLogger: types.Logger that writes through testing.T and records
//     entries for assertions
//
// Example usage:
//
//	import (
//	    "testing"
//	    chargetest "github.com/woodtho/charge/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    kv := chargetest.StartBroker(t).RosterBucket("ward-4")
//	    // publish rosters to kv
//	}
package testing
