package types

import (
	"strings"
	"time"
)

// Tag identifies one of the eight independent room flags.
type Tag int

// Room tags, in display order.
const (
	TagDischarge Tag = iota
	TagUnder24
	TagOver24
	TagBabyInSCN
	TagGyn
	TagBFI
	TagCS
	TagVag
)

// AllTags lists every tag in display order.
var AllTags = []Tag{TagDischarge, TagUnder24, TagOver24, TagBabyInSCN, TagGyn, TagBFI, TagCS, TagVag}

var tagNames = [...]string{"discharge", "under_24", "over_24", "baby_in_scn", "gyn", "bfi", "cs", "vag"}

var tagAbbrevs = [...]string{"D/C", "<24", ">24", "SCN", "GYN", "BFI", "CS", "VAG"}

// String returns the canonical snake_case tag name.
func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "unknown"
	}

	return tagNames[t]
}

// Abbrev returns the short label used in per-nurse room labels.
func (t Tag) Abbrev() string {
	if t < 0 || int(t) >= len(tagAbbrevs) {
		return "?"
	}

	return tagAbbrevs[t]
}

// Tags holds the eight independent boolean tags of a room.
type Tags struct {
	Discharge bool `json:"discharge" yaml:"discharge"`
	Under24   bool `json:"under_24" yaml:"under_24"`
	Over24    bool `json:"over_24" yaml:"over_24"`
	BabyInSCN bool `json:"baby_in_scn" yaml:"baby_in_scn"`
	Gyn       bool `json:"gyn" yaml:"gyn"`
	BFI       bool `json:"bfi" yaml:"bfi"`
	CS        bool `json:"cs" yaml:"cs"`
	Vag       bool `json:"vag" yaml:"vag"`
}

// Has reports whether the given tag is present.
func (t Tags) Has(tag Tag) bool {
	switch tag {
	case TagDischarge:
		return t.Discharge
	case TagUnder24:
		return t.Under24
	case TagOver24:
		return t.Over24
	case TagBabyInSCN:
		return t.BabyInSCN
	case TagGyn:
		return t.Gyn
	case TagBFI:
		return t.BFI
	case TagCS:
		return t.CS
	case TagVag:
		return t.Vag
	default:
		return false
	}
}

// Active returns the present tags in display order.
func (t Tags) Active() []Tag {
	active := make([]Tag, 0, len(AllTags))
	for _, tag := range AllTags {
		if t.Has(tag) {
			active = append(active, tag)
		}
	}

	return active
}

// Abbrevs returns the comma-joined abbreviations of the present tags ("" if none).
func (t Tags) Abbrevs() string {
	active := t.Active()
	if len(active) == 0 {
		return ""
	}

	parts := make([]string, len(active))
	for i, tag := range active {
		parts[i] = tag.Abbrev()
	}

	return strings.Join(parts, ",")
}

// RoomRecord is a validated, time-resolved occupied room.
//
// The engine trusts RoomRecord completely: Room must be unique and canonical and
// Time must already be anchored to the current day at minute resolution.
type RoomRecord struct {
	// Room is the room identifier (e.g. "12" or "A-3").
	Room string `json:"room" yaml:"room"`

	// Time is the resolved calendar timestamp for the room's patient.
	Time time.Time `json:"time" yaml:"time"`

	// Tags are the room's independent flags.
	Tags Tags `json:"tags" yaml:"tags"`
}

// EnrichedRoom is a RoomRecord plus values derived once per allocation run.
type EnrichedRoom struct {
	RoomRecord

	// Workload is the tag-derived weight of the room (always > 0).
	Workload float64

	// GroupKey is the adjacency key: the bay prefix for multi-bed bays, else the room id.
	GroupKey string

	// EffectiveLoad blends Workload with the time of day (always > 0).
	EffectiveLoad float64

	// HashKey is a stable integer derived from the room id and minute-truncated time.
	HashKey uint64
}

// AgePriority returns 0 for under_24 rooms, 1 for over_24 rooms and 2 otherwise.
func (r EnrichedRoom) AgePriority() int {
	switch {
	case r.Tags.Under24:
		return 0
	case r.Tags.Over24:
		return 1
	default:
		return 2
	}
}
