package types

import "context"

// RoomSource provides the validated room rows for an allocation run.
//
// Implementations sit behind the external validator: whatever they return is
// treated as clean, canonical, time-resolved input.
type RoomSource interface {
	// ListRooms returns the occupied rooms to allocate.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []RoomRecord: Validated room rows
	//   - error: Retrieval error (nil on success)
	ListRooms(ctx context.Context) ([]RoomRecord, error)
}
