// Package source provides built-in room source implementations.
//
// Room sources hand validated room rows to the Allocator. The package includes:
//
//   - Static: Fixed in-memory list of rooms
//   - File: Rooms read from a YAML document on every call
//
// Custom sources can be implemented by satisfying the types.RoomSource interface.
package source
