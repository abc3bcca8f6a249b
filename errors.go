package charge

import "github.com/woodtho/charge/types"

// Sentinel errors returned by the Allocator, re-exported from the types package.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrInvalidNurseCount is returned when the nurse count is less than one.
	ErrInvalidNurseCount = types.ErrInvalidNurseCount

	// ErrRoomSourceRequired is returned when AllocateFrom is called with a nil source.
	ErrRoomSourceRequired = types.ErrRoomSourceRequired

	// ErrCapacityExhausted signals an internal consistency failure: a room had no
	// nurse with remaining capacity.
	ErrCapacityExhausted = types.ErrCapacityExhausted

	// ErrRoomAlreadyAssigned signals an internal consistency failure: a room was
	// about to be placed twice.
	ErrRoomAlreadyAssigned = types.ErrRoomAlreadyAssigned
)

// IsEngineFault reports whether err is an internal consistency failure rather
// than a problem with the call arguments.
func IsEngineFault(err error) bool {
	return types.IsEngineFault(err)
}
