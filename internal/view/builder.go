// Package view turns an assignment map into the per-room and per-nurse tables.
package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/woodtho/charge/internal/rank"
	"github.com/woodtho/charge/types"
)

// TimeLayout is the wall-clock layout used in labels and formatted times.
const TimeLayout = "15:04"

// Builder formats views in a fixed display zone.
type Builder struct {
	loc *time.Location
}

// NewBuilder creates a Builder. A nil loc formats every timestamp in its own zone.
func NewBuilder(loc *time.Location) *Builder {
	return &Builder{loc: loc}
}

// Tables is the reportable output of one run.
type Tables struct {
	Rooms   []types.RoomView
	Nurses  []types.NurseView
	Summary types.Summary
}

// Build produces the per-room and per-nurse tables.
//
// Rooms missing from assignments are ignored. The per-room table is sorted by nurse
// id, then oldest rank, then room id. The per-nurse table has one row for every
// nurse id in 1..nurseCount, including nurses that received nothing.
//
// Parameters:
//   - records: Rooms of the run
//   - assignments: Room id to nurse id
//   - nurseCount: Number of nurses in the run
//
// Returns:
//   - Tables: Both tables plus run totals
func (b *Builder) Build(records []types.RoomRecord, assignments types.AssignmentMap, nurseCount int) Tables {
	entries := make([]rank.Entry, 0, len(records))
	assigned := make([]types.RoomRecord, 0, len(records))
	for _, r := range records {
		if _, ok := assignments[r.Room]; !ok {
			continue
		}
		entries = append(entries, rank.Entry{Room: r.Room, Time: r.Time})
		assigned = append(assigned, r)
	}
	ranks := rank.Compute(entries)

	rooms := make([]types.RoomView, len(assigned))
	for i, r := range assigned {
		rk := ranks[r.Room]
		rooms[i] = types.RoomView{
			Room:          r.Room,
			Time:          r.Time,
			OldestRank:    rk.Oldest,
			YoungestRank:  rk.Youngest,
			Nurse:         assignments[r.Room],
			Tags:          r.Tags,
			FormattedTime: b.format(r.Time),
		}
	}
	slices.SortFunc(rooms, func(a, c types.RoomView) int {
		if n := cmp.Compare(a.Nurse, c.Nurse); n != 0 {
			return n
		}
		if n := cmp.Compare(a.OldestRank, c.OldestRank); n != 0 {
			return n
		}

		return cmp.Compare(a.Room, c.Room)
	})

	nurses := make([]types.NurseView, max(nurseCount, 0))
	for i := range nurses {
		nurses[i] = types.NurseView{Nurse: i + 1, Rooms: []string{}}
	}
	labels := make([][]string, len(nurses))

	summary := types.Summary{RoomCount: len(rooms), NurseCount: len(nurses)}
	for _, rv := range rooms {
		summary.TagTotals.Add(rv.Tags)

		idx := rv.Nurse - 1
		if idx < 0 || idx >= len(nurses) {
			continue
		}

		nv := &nurses[idx]
		nv.RoomCount++
		nv.Rooms = append(nv.Rooms, rv.Room)
		nv.TagCounts.Add(rv.Tags)
		nv.MinOldestRank = minRank(nv.MinOldestRank, rv.OldestRank)
		nv.MaxOldestRank = maxRank(nv.MaxOldestRank, rv.OldestRank)
		nv.MinYoungestRank = minRank(nv.MinYoungestRank, rv.YoungestRank)
		nv.MaxYoungestRank = maxRank(nv.MaxYoungestRank, rv.YoungestRank)
		labels[idx] = append(labels[idx], label(rv))
	}

	for i := range nurses {
		nurses[i].Label = strings.Join(labels[i], ", ")
		if i == 0 {
			summary.MinRooms = nurses[i].RoomCount
			summary.MaxRooms = nurses[i].RoomCount

			continue
		}
		summary.MinRooms = min(summary.MinRooms, nurses[i].RoomCount)
		summary.MaxRooms = max(summary.MaxRooms, nurses[i].RoomCount)
	}

	return Tables{Rooms: rooms, Nurses: nurses, Summary: summary}
}

func (b *Builder) format(t time.Time) string {
	if b.loc != nil {
		t = t.In(b.loc)
	}

	return t.Format(TimeLayout)
}

// label renders "<room> <HH:MM>" followed by the tag abbreviations, if any.
func label(rv types.RoomView) string {
	s := rv.Room + " " + rv.FormattedTime
	if abbrevs := rv.Tags.Abbrevs(); abbrevs != "" {
		s += " " + abbrevs
	}

	return s
}

func minRank(cur *int, v int) *int {
	if cur != nil && *cur <= v {
		return cur
	}

	return &v
}

func maxRank(cur *int, v int) *int {
	if cur != nil && *cur >= v {
		return cur
	}

	return &v
}
