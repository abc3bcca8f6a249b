package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/woodtho/charge/types"
)

func sampleRooms() []types.RoomRecord {
	at := time.Date(2026, 10, 16, 7, 30, 0, 0, time.UTC)

	return []types.RoomRecord{
		{Room: "A-1", Time: at, Tags: types.Tags{Over24: true, BFI: true}},
		{Room: "12", Time: at.Add(time.Hour), Tags: types.Tags{Discharge: true}},
		{Room: "3", Time: at.Add(2 * time.Hour)},
	}
}

func TestStatic_ListRooms(t *testing.T) {
	t.Run("returns all rooms", func(t *testing.T) {
		rooms := sampleRooms()
		src := NewStatic(rooms)

		result, err := src.ListRooms(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 3)
		require.Equal(t, rooms, result)
	})

	t.Run("returns empty list when no rooms", func(t *testing.T) {
		src := NewStatic(nil)

		result, err := src.ListRooms(context.Background())

		require.NoError(t, err)
		require.Empty(t, result)
	})

	t.Run("does not alias the constructor slice", func(t *testing.T) {
		rooms := sampleRooms()
		src := NewStatic(rooms)

		rooms[0].Room = "changed"
		result, err := src.ListRooms(context.Background())

		require.NoError(t, err)
		require.Equal(t, "A-1", result[0].Room)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		src := NewStatic(sampleRooms())

		first, _ := src.ListRooms(context.Background())
		first[1].Tags.CS = true
		second, _ := src.ListRooms(context.Background())

		require.False(t, second[1].Tags.CS)
	})
}

func TestStatic_Update(t *testing.T) {
	src := NewStatic(sampleRooms())

	src.Update(sampleRooms()[:1])
	result, err := src.ListRooms(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "A-1", result[0].Room)
}
