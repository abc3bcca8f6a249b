// Package phase splits enriched rooms into the fixed allocation phases and orders
// the rooms inside each phase.
package phase

import (
	"slices"
	"strings"

	"github.com/woodtho/charge/types"
)

// Phase identifies one of the fixed allocation phases.
type Phase int

// Phases in the order they are processed.
const (
	Discharge Phase = iota
	Under24
	Over24
	Remaining
)

// All lists the phases in processing order.
var All = []Phase{Discharge, Under24, Over24, Remaining}

// String returns the phase name used in logs and metrics.
func (p Phase) String() string {
	switch p {
	case Discharge:
		return "discharge"
	case Under24:
		return "under_24"
	case Over24:
		return "over_24"
	case Remaining:
		return "remaining"
	default:
		return "unknown"
	}
}

// RoundRobin reports whether the phase uses round-robin selection. Only the
// catch-all phase uses scored selection.
func (p Phase) RoundRobin() bool {
	return p != Remaining
}

// Of returns the first phase whose tag the room carries.
func Of(room types.EnrichedRoom) Phase {
	switch {
	case room.Tags.Discharge:
		return Discharge
	case room.Tags.Under24:
		return Under24
	case room.Tags.Over24:
		return Over24
	default:
		return Remaining
	}
}

// Group is the ordered room list of one phase.
type Group struct {
	Phase Phase
	Rooms []types.EnrichedRoom
}

// Sequence partitions rooms into the four phases and sorts each phase.
//
// Every room lands in exactly one group. Groups are returned in processing order,
// including empty ones, so callers can report per-phase counts uniformly.
//
// Parameters:
//   - rooms: Enriched rooms in any order
//
// Returns:
//   - []Group: One group per phase, in processing order
func Sequence(rooms []types.EnrichedRoom) []Group {
	groups := make([]Group, len(All))
	for i, p := range All {
		groups[i] = Group{Phase: p, Rooms: []types.EnrichedRoom{}}
	}

	for _, room := range rooms {
		p := Of(room)
		groups[p].Rooms = append(groups[p].Rooms, room)
	}

	for i := range groups {
		slices.SortFunc(groups[i].Rooms, Compare)
	}

	return groups
}

// Compare orders rooms by age priority, then timestamp ascending, then room id.
// It is a total order over distinct room ids.
func Compare(a, b types.EnrichedRoom) int {
	if pa, pb := a.AgePriority(), b.AgePriority(); pa != pb {
		if pa < pb {
			return -1
		}

		return 1
	}

	if c := a.Time.Compare(b.Time); c != 0 {
		return c
	}

	return strings.Compare(a.Room, b.Room)
}
