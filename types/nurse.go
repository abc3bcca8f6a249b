package types

// NurseState is the mutable bookkeeping for one nurse during a single allocation run.
//
// A NurseState is created at the start of a run, changed only through Assign and
// discarded when the run finishes. It is never shared between runs.
type NurseState struct {
	// ID is the 1-based nurse identifier.
	ID int

	// Capacity is the quota planned for this nurse at the start of the run.
	Capacity int

	// Remaining is the number of rooms this nurse can still receive.
	Remaining int

	// Count is the number of rooms assigned so far.
	Count int

	// LoadSum is the running sum of EffectiveLoad over the assigned rooms.
	LoadSum float64

	// HasBFI records whether the nurse already holds a bfi room.
	HasBFI bool

	// HasCS records whether the nurse already holds a cs room.
	HasCS bool

	groups map[string]struct{}
}

// NewNurseState creates the initial state for a nurse with the given quota.
func NewNurseState(id, capacity int) *NurseState {
	return &NurseState{
		ID:        id,
		Capacity:  capacity,
		Remaining: capacity,
		groups:    make(map[string]struct{}),
	}
}

// HoldsGroup reports whether the nurse already holds a room with the given group key.
func (n *NurseState) HoldsGroup(key string) bool {
	_, ok := n.groups[key]

	return ok
}

// WouldDuplicate reports whether giving room to this nurse would create a second
// bfi or a second cs room for the nurse.
func (n *NurseState) WouldDuplicate(room EnrichedRoom) bool {
	return (room.Tags.BFI && n.HasBFI) || (room.Tags.CS && n.HasCS)
}

// Assign records room against the nurse.
//
// The caller must have checked Remaining > 0; Assign never lets Remaining go negative
// and reports false instead of mutating when the nurse is full.
func (n *NurseState) Assign(room EnrichedRoom) bool {
	if n.Remaining <= 0 {
		return false
	}

	n.Remaining--
	n.Count++
	n.LoadSum += room.EffectiveLoad
	n.groups[room.GroupKey] = struct{}{}
	if room.Tags.BFI {
		n.HasBFI = true
	}
	if room.Tags.CS {
		n.HasCS = true
	}

	return true
}
