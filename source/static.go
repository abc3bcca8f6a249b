package source

import (
	"context"
	"sync"

	"github.com/woodtho/charge/types"
)

// Static implements a room source with a fixed list of rooms.
type Static struct {
	mu    sync.RWMutex
	rooms []types.RoomRecord
}

var _ types.RoomSource = (*Static)(nil)

// NewStatic creates a new static room source.
//
// Parameters:
//   - rooms: Validated room rows
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]types.RoomRecord{
//	    {Room: "A-1", Time: admitted, Tags: types.Tags{Over24: true, BFI: true}},
//	    {Room: "12", Time: admitted, Tags: types.Tags{Discharge: true}},
//	})
//	res, err := alloc.AllocateFrom(ctx, src, 3)
func NewStatic(rooms []types.RoomRecord) *Static {
	s := &Static{}
	s.Update(rooms)

	return s
}

// ListRooms returns a copy of the static room list.
//
// Returns:
//   - []types.RoomRecord: The fixed list of rooms
//   - error: Always nil (never fails)
func (s *Static) ListRooms(_ context.Context) ([]types.RoomRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.RoomRecord, len(s.rooms))
	copy(result, s.rooms)

	return result, nil
}

// Update replaces the room list, e.g. between shifts.
//
// Parameters:
//   - rooms: New list of rooms
func (s *Static) Update(rooms []types.RoomRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms = make([]types.RoomRecord, len(rooms))
	copy(s.rooms, rooms)
}
