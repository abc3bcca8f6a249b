package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodtho/charge/types"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 16, hour, minute, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func TestBuilder_Build(t *testing.T) {
	records := []types.RoomRecord{
		{Room: "5", Time: at(9, 0), Tags: types.Tags{Discharge: true}},
		{Room: "A-1", Time: at(7, 30), Tags: types.Tags{Over24: true, BFI: true}},
		{Room: "2", Time: at(8, 15)},
	}
	assignments := types.AssignmentMap{"5": 1, "A-1": 1, "2": 2}

	tables := NewBuilder(time.UTC).Build(records, assignments, 3)

	t.Run("room table", func(t *testing.T) {
		require.Len(t, tables.Rooms, 3)
		assert.Equal(t, "A-1", tables.Rooms[0].Room)
		assert.Equal(t, 1, tables.Rooms[0].OldestRank)
		assert.Equal(t, 3, tables.Rooms[0].YoungestRank)
		assert.Equal(t, "07:30", tables.Rooms[0].FormattedTime)
		assert.Equal(t, "5", tables.Rooms[1].Room)
		assert.Equal(t, 3, tables.Rooms[1].OldestRank)
		assert.Equal(t, "2", tables.Rooms[2].Room)
		assert.Equal(t, 2, tables.Rooms[2].Nurse)
	})

	t.Run("nurse table", func(t *testing.T) {
		require.Len(t, tables.Nurses, 3)

		n1 := tables.Nurses[0]
		assert.Equal(t, 1, n1.Nurse)
		assert.Equal(t, 2, n1.RoomCount)
		assert.Equal(t, []string{"A-1", "5"}, n1.Rooms)
		assert.Equal(t, "A-1 07:30 >24,BFI, 5 09:00 D/C", n1.Label)
		assert.Equal(t, types.TagCounts{Discharge: 1, Over24: 1, BFI: 1}, n1.TagCounts)
		assert.Equal(t, intPtr(1), n1.MinOldestRank)
		assert.Equal(t, intPtr(3), n1.MaxOldestRank)
		assert.Equal(t, intPtr(1), n1.MinYoungestRank)
		assert.Equal(t, intPtr(3), n1.MaxYoungestRank)

		n2 := tables.Nurses[1]
		assert.Equal(t, "2 08:15", n2.Label)
		assert.Equal(t, intPtr(2), n2.MinOldestRank)
		assert.Equal(t, intPtr(2), n2.MaxOldestRank)
	})

	t.Run("nurse without rooms", func(t *testing.T) {
		n3 := tables.Nurses[2]
		assert.Equal(t, 3, n3.Nurse)
		assert.Zero(t, n3.RoomCount)
		assert.Empty(t, n3.Rooms)
		assert.NotNil(t, n3.Rooms)
		assert.Empty(t, n3.Label)
		assert.Nil(t, n3.MinOldestRank)
		assert.Nil(t, n3.MaxOldestRank)
		assert.Nil(t, n3.MinYoungestRank)
		assert.Nil(t, n3.MaxYoungestRank)
	})

	t.Run("summary", func(t *testing.T) {
		assert.Equal(t, 3, tables.Summary.RoomCount)
		assert.Equal(t, 3, tables.Summary.NurseCount)
		assert.Equal(t, 0, tables.Summary.MinRooms)
		assert.Equal(t, 2, tables.Summary.MaxRooms)
		assert.Equal(t, 2, tables.Summary.Spread())
		assert.Equal(t, types.TagCounts{Discharge: 1, Over24: 1, BFI: 1}, tables.Summary.TagTotals)
	})
}

func TestBuilder_DisplayZone(t *testing.T) {
	zone := time.FixedZone("AEST", 10*60*60)
	records := []types.RoomRecord{{Room: "1", Time: at(22, 5), Tags: types.Tags{CS: true, Vag: true}}}
	assignments := types.AssignmentMap{"1": 1}

	tables := NewBuilder(zone).Build(records, assignments, 1)

	assert.Equal(t, "08:05", tables.Rooms[0].FormattedTime)
	assert.Equal(t, "1 08:05 CS,VAG", tables.Nurses[0].Label)
	assert.True(t, tables.Rooms[0].Time.Equal(at(22, 5)), "raw timestamp is untouched")

	own := NewBuilder(nil).Build(records, assignments, 1)
	assert.Equal(t, "22:05", own.Rooms[0].FormattedTime)
}

func TestBuilder_TiedTimestamps(t *testing.T) {
	records := []types.RoomRecord{
		{Room: "3", Time: at(6, 0)},
		{Room: "4", Time: at(6, 0)},
	}

	tables := NewBuilder(time.UTC).Build(records, types.AssignmentMap{"3": 1, "4": 1}, 1)

	for _, rv := range tables.Rooms {
		assert.Equal(t, 1, rv.OldestRank, rv.Room)
		assert.Equal(t, 2, rv.YoungestRank, rv.Room)
	}
	assert.Equal(t, []string{"3", "4"}, tables.Nurses[0].Rooms)
}

func TestBuilder_SkipsUnassigned(t *testing.T) {
	records := []types.RoomRecord{{Room: "1", Time: at(6, 0)}, {Room: "2", Time: at(7, 0)}}

	tables := NewBuilder(time.UTC).Build(records, types.AssignmentMap{"2": 1}, 1)

	require.Len(t, tables.Rooms, 1)
	assert.Equal(t, 1, tables.Rooms[0].OldestRank, "ranks cover assigned rooms only")
}
