// Package rank computes dense age ranks over assigned rooms.
package rank

import (
	"cmp"
	"slices"
	"time"
)

// Entry is the input to Compute: one assigned room and its timestamp.
type Entry struct {
	Room string
	Time time.Time
}

// Ranks holds both ranks for one room.
type Ranks struct {
	// Oldest is the dense rank by timestamp, 1 for the earliest.
	Oldest int

	// Youngest is total - Oldest + 1.
	Youngest int
}

// Compute assigns dense oldest/youngest ranks to every entry.
//
// Entries are ordered by timestamp, then room id. The oldest rank starts at 1 and
// increases only when the timestamp differs from the previous entry, so equal
// timestamps share a rank. The youngest rank mirrors it against the total entry
// count, which keeps Oldest + Youngest equal to total + 1 for every room.
//
// Parameters:
//   - entries: Assigned rooms; ids must be unique
//
// Returns:
//   - map[string]Ranks: Ranks keyed by room id
func Compute(entries []Entry) map[string]Ranks {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		if c := a.Time.Compare(b.Time); c != 0 {
			return c
		}

		return cmp.Compare(a.Room, b.Room)
	})

	total := len(sorted)
	ranks := make(map[string]Ranks, total)

	current := 0
	for i, e := range sorted {
		if i == 0 || !e.Time.Equal(sorted[i-1].Time) {
			current++
		}
		ranks[e.Room] = Ranks{Oldest: current, Youngest: total - current + 1}
	}

	return ranks
}
