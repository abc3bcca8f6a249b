package types

import (
	"maps"
	"slices"
	"time"
)

// AssignmentMap maps room id to nurse id.
type AssignmentMap map[string]int

// RoomView is one row of the per-room table.
type RoomView struct {
	Room          string    `json:"room"`
	Time          time.Time `json:"time"`
	OldestRank    int       `json:"oldest_rank"`
	YoungestRank  int       `json:"youngest_rank"`
	Nurse         int       `json:"nurse"`
	Tags          Tags      `json:"tags"`
	FormattedTime string    `json:"formatted_time"`
}

// TagCounts counts rooms per tag.
type TagCounts struct {
	Discharge int `json:"discharge"`
	Under24   int `json:"under_24"`
	Over24    int `json:"over_24"`
	BabyInSCN int `json:"baby_in_scn"`
	Gyn       int `json:"gyn"`
	BFI       int `json:"bfi"`
	CS        int `json:"cs"`
	Vag       int `json:"vag"`
}

// Add counts every tag present in tags.
func (c *TagCounts) Add(tags Tags) {
	if tags.Discharge {
		c.Discharge++
	}
	if tags.Under24 {
		c.Under24++
	}
	if tags.Over24 {
		c.Over24++
	}
	if tags.BabyInSCN {
		c.BabyInSCN++
	}
	if tags.Gyn {
		c.Gyn++
	}
	if tags.BFI {
		c.BFI++
	}
	if tags.CS {
		c.CS++
	}
	if tags.Vag {
		c.Vag++
	}
}

// NurseView is one row of the per-nurse table.
//
// The rank bounds are nil when the nurse received no rooms.
type NurseView struct {
	Nurse           int       `json:"nurse"`
	RoomCount       int       `json:"room_count"`
	Rooms           []string  `json:"rooms"`
	Label           string    `json:"label"`
	TagCounts       TagCounts `json:"tag_counts"`
	MinOldestRank   *int      `json:"min_oldest_rank"`
	MaxOldestRank   *int      `json:"max_oldest_rank"`
	MinYoungestRank *int      `json:"min_youngest_rank"`
	MaxYoungestRank *int      `json:"max_youngest_rank"`
}

// Summary holds run-level totals.
type Summary struct {
	RoomCount  int       `json:"room_count"`
	NurseCount int       `json:"nurse_count"`
	MinRooms   int       `json:"min_rooms"`
	MaxRooms   int       `json:"max_rooms"`
	TagTotals  TagCounts `json:"tag_totals"`
}

// Spread returns the difference between the busiest and the least busy nurse.
func (s Summary) Spread() int {
	return s.MaxRooms - s.MinRooms
}

// Result is the complete output of one allocation run.
type Result struct {
	// Assignments is the raw room to nurse mapping.
	Assignments AssignmentMap `json:"assignments"`

	// Rooms is the per-room table, sorted by nurse then oldest rank.
	Rooms []RoomView `json:"rooms"`

	// Nurses is the per-nurse table for nurses 1..N.
	Nurses []NurseView `json:"nurses"`

	// Summary holds run-level totals.
	Summary Summary `json:"summary"`

	// Fingerprint is a stable digest of the tables; identical inputs give identical fingerprints.
	Fingerprint string `json:"fingerprint"`
}

// Clone returns a deep copy of the result.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}

	out := &Result{
		Assignments: maps.Clone(r.Assignments),
		Rooms:       slices.Clone(r.Rooms),
		Nurses:      make([]NurseView, len(r.Nurses)),
		Summary:     r.Summary,
		Fingerprint: r.Fingerprint,
	}

	for i, nv := range r.Nurses {
		nv.Rooms = slices.Clone(nv.Rooms)
		nv.MinOldestRank = cloneInt(nv.MinOldestRank)
		nv.MaxOldestRank = cloneInt(nv.MaxOldestRank)
		nv.MinYoungestRank = cloneInt(nv.MinYoungestRank)
		nv.MaxYoungestRank = cloneInt(nv.MaxYoungestRank)
		out.Nurses[i] = nv
	}

	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}
