package charge

import "github.com/woodtho/charge/types"

// Re-export types from the types package.
//
// Internal packages depend on types rather than on the root package; the aliases
// give callers charge.RoomRecord, charge.Result and friends without the extra import.
type (
	Tag           = types.Tag
	Tags          = types.Tags
	RoomRecord    = types.RoomRecord
	AssignmentMap = types.AssignmentMap
	RoomView      = types.RoomView
	NurseView     = types.NurseView
	TagCounts     = types.TagCounts
	Summary       = types.Summary
	Result        = types.Result
)

// Re-export interfaces from the types package for convenience.
type (
	RoomSource       = types.RoomSource
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
)

// Re-export Tag constants from the types package.
const (
	TagDischarge = types.TagDischarge
	TagUnder24   = types.TagUnder24
	TagOver24    = types.TagOver24
	TagBabyInSCN = types.TagBabyInSCN
	TagGyn       = types.TagGyn
	TagBFI       = types.TagBFI
	TagCS        = types.TagCS
	TagVag       = types.TagVag
)
