package types

import "errors"

// Sentinel errors for the charge library.
//
// Callers check them with errors.Is. Components wrap them with context using
// fmt.Errorf("%s: %w", msg, err) so the sentinel survives the wrapping.
//
// The errors fall in two groups that callers must be able to tell apart:
//   - Call errors: the caller passed arguments the library cannot work with.
//   - Engine consistency errors: an internal invariant broke. These are bugs,
//     never the result of bad room data, and retrying never helps.

// Call errors - returned by the Allocator facade before any allocation starts.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidNurseCount is returned when the nurse count is less than one.
	ErrInvalidNurseCount = errors.New("nurse count must be at least 1")

	// ErrRoomSourceRequired is returned when AllocateFrom is called with a nil source.
	ErrRoomSourceRequired = errors.New("room source is required")
)

// Engine consistency errors - returned by the assignment engine.
var (
	// ErrCapacityExhausted is returned when a room must be placed but no nurse has
	// remaining capacity. It can only happen if the planned capacities do not sum
	// to the room count.
	ErrCapacityExhausted = errors.New("capacity exhausted: no nurse has remaining capacity")

	// ErrRoomAlreadyAssigned is returned when the engine attempts to record a second
	// nurse for a room that an earlier step already placed.
	ErrRoomAlreadyAssigned = errors.New("room already assigned")
)

// IsEngineFault reports whether err is an engine consistency error rather than a
// call error.
func IsEngineFault(err error) bool {
	return errors.Is(err, ErrCapacityExhausted) || errors.Is(err, ErrRoomAlreadyAssigned)
}
