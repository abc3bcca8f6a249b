package strategy

import (
	"github.com/woodtho/charge/types"
)

// RoundRobin implements cyclic nurse selection.
//
// RoundRobin itself is stateless. The rotation position lives in a Cursor value that
// the caller threads from one selection to the next (and from phase to phase).
type RoundRobin struct{}

// Cursor is the rotation pointer: the nurse index the next rotation starts at.
type Cursor int

// NewRoundRobin creates a new round-robin selector.
//
// Returns:
//   - *RoundRobin: Initialized round-robin selector
//
// Example:
//
//	rr := strategy.NewRoundRobin()
//	idx, cursor, err := rr.Select(room, nurses, 0)
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Select picks the nurse for room.
//
// The algorithm:
//  1. Rotate the nurse list to start at cursor and keep nurses with capacity left
//  2. Take the first candidate that would not duplicate bfi or cs for the room
//  3. If every candidate would duplicate, take the first candidate anyway
//  4. Advance the cursor to just after the chosen nurse
//
// Parameters:
//   - room: Room being placed
//   - nurses: Nurse states in id order (index 0 is nurse 1)
//   - cursor: Current rotation pointer
//
// Returns:
//   - int: Index into nurses of the chosen nurse
//   - Cursor: Rotation pointer for the next selection
//   - error: ErrNoNurses for an empty list, types.ErrCapacityExhausted when every nurse is full
func (rr *RoundRobin) Select(room types.EnrichedRoom, nurses []*types.NurseState, cursor Cursor) (int, Cursor, error) {
	n := len(nurses)
	if n == 0 {
		return -1, cursor, ErrNoNurses
	}

	start := ((int(cursor) % n) + n) % n
	chosen := -1
	fallback := -1

	for offset := range n {
		idx := (start + offset) % n
		nurse := nurses[idx]
		if nurse.Remaining <= 0 {
			continue
		}

		if fallback < 0 {
			fallback = idx
		}

		if !nurse.WouldDuplicate(room) {
			chosen = idx

			break
		}
	}

	if fallback < 0 {
		return -1, cursor, types.ErrCapacityExhausted
	}

	if chosen < 0 {
		chosen = fallback
	}

	return chosen, Cursor((chosen + 1) % n), nil
}
