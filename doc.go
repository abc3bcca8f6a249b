// Package charge provides a deterministic nurse/room allocation engine for a
// postnatal ward.
//
// Given the occupied rooms of a shift and the number of nurses on duty, charge
// splits the rooms into near-equal quotas and places every room with one nurse.
// The same input always produces the same allocation.
//
// # Quick Start
//
//	import "github.com/woodtho/charge"
//
//	cfg := charge.DefaultConfig()
//	cfg.Timezone = "Australia/Brisbane"
//
//	alloc, err := charge.NewAllocator(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := alloc.Allocate([]charge.RoomRecord{
//	    {Room: "A-1", Time: admitted, Tags: charge.Tags{Over24: true, BFI: true}},
//	    {Room: "12", Time: admitted, Tags: charge.Tags{Discharge: true}},
//	}, 2)
//
// # Allocation Phases
//
// Rooms are placed in four phases:
//
//	discharge → under_24 → over_24 → remaining
//
// A room belongs to the first phase whose tag it carries. The first three phases
// rotate through the nurses with a shared pointer, steering a second bfi or cs room
// away from a nurse that already holds one whenever another nurse has capacity.
// The remaining rooms go to the nurse with the lowest balance score: distance from
// a fair room count and a fair workload, a small bonus for staying in the same bay,
// and large penalties for a second bfi or cs room.
//
// # Output
//
// Result carries the raw assignment map, a per-room table with dense oldest and
// youngest ranks, a per-nurse table with labels such as "A-1 07:30 >24,BFI",
// run totals, and a fingerprint that is equal for equal inputs.
//
// # Integration
//
// The publish package stores results in a NATS JetStream key-value bucket so ward
// displays can watch the latest roster. The source package provides static and
// YAML-file room sources for AllocateFrom.
//
// See the examples/ directory for a complete working example.
package charge
