// Package enrich derives the per-room values the allocation engine works with.
package enrich

import (
	"strings"
	"time"

	"github.com/woodtho/charge/types"
)

const (
	minutesPerDay = 1440

	hashModulus    = 104729
	hashPosModulus = 97
)

// Weights holds the additive workload adjustments per tag.
type Weights struct {
	Base      float64
	Discharge float64
	BabyInSCN float64
	Gyn       float64
	BFI       float64
	CS        float64
	Vag       float64
	Floor     float64
}

// DefaultWeights returns the standard ward workload weights.
func DefaultWeights() Weights {
	return Weights{
		Base:      1.0,
		Discharge: -0.25,
		BabyInSCN: -0.25,
		Gyn:       -0.15,
		BFI:       0.4,
		CS:        0.55,
		Vag:       0.2,
		Floor:     0.2,
	}
}

// Enricher computes EnrichedRoom values. It holds no per-run state and is safe for
// concurrent use.
type Enricher struct {
	weights     Weights
	bayPrefixes map[string]struct{}
}

// New creates an Enricher.
//
// Parameters:
//   - weights: Workload weights (see DefaultWeights)
//   - bayPrefixes: Room id prefixes that denote multi-bed bays
//
// Returns:
//   - *Enricher: Ready-to-use enricher
func New(weights Weights, bayPrefixes []string) *Enricher {
	prefixes := make(map[string]struct{}, len(bayPrefixes))
	for _, p := range bayPrefixes {
		prefixes[p] = struct{}{}
	}

	return &Enricher{weights: weights, bayPrefixes: prefixes}
}

// EnrichAll enriches every record, preserving input order.
func (e *Enricher) EnrichAll(records []types.RoomRecord) []types.EnrichedRoom {
	rooms := make([]types.EnrichedRoom, len(records))
	for i, rec := range records {
		rooms[i] = e.Enrich(rec)
	}

	return rooms
}

// Enrich computes the derived values for a single record.
func (e *Enricher) Enrich(rec types.RoomRecord) types.EnrichedRoom {
	workload := e.Workload(rec.Tags)

	return types.EnrichedRoom{
		RoomRecord:    rec,
		Workload:      workload,
		GroupKey:      e.GroupKey(rec.Room),
		EffectiveLoad: EffectiveLoad(workload, rec.Time),
		HashKey:       HashKey(rec.Room, rec.Time),
	}
}

// Workload returns the tag-derived weight, never below the configured floor.
func (e *Enricher) Workload(tags types.Tags) float64 {
	w := e.weights.Base
	if tags.Discharge {
		w += e.weights.Discharge
	}
	if tags.BabyInSCN {
		w += e.weights.BabyInSCN
	}
	if tags.Gyn {
		w += e.weights.Gyn
	}
	if tags.BFI {
		w += e.weights.BFI
	}
	if tags.CS {
		w += e.weights.CS
	}
	if tags.Vag {
		w += e.weights.Vag
	}

	return max(w, e.weights.Floor)
}

// GroupKey returns the bay prefix for "<prefix>-<suffix>" ids whose prefix is a known
// bay, and the room id itself for everything else.
func (e *Enricher) GroupKey(room string) string {
	prefix, suffix, ok := strings.Cut(room, "-")
	if !ok || prefix == "" || suffix == "" {
		return room
	}

	if _, isBay := e.bayPrefixes[prefix]; isBay {
		return prefix
	}

	return room
}

// EffectiveLoad scales workload by how late in the day t falls:
// (1 + minutesSinceMidnight/1440) * workload.
func EffectiveLoad(workload float64, t time.Time) float64 {
	minutes := t.Hour()*60 + t.Minute()

	return (1 + float64(minutes)/minutesPerDay) * workload
}

// HashKey returns the stable position-weighted character sum over
// "<room>|<t truncated to the minute>".
//
// The time is rendered with time.RFC3339 in t's own zone ("2006-01-02T15:04:05Z07:00"),
// so "7" at 07:30 UTC hashes "7|2026-10-16T07:30:00Z" and the same instant in
// AEST hashes "7|2026-10-16T17:30:00+10:00".
func HashKey(room string, t time.Time) uint64 {
	s := room + "|" + t.Truncate(time.Minute).Format(time.RFC3339)

	var sum uint64
	i := 0
	for _, c := range s {
		weight := uint64((i+1)%hashPosModulus + 1) //nolint:gosec // i is non-negative
		sum += (uint64(c) * weight) % hashModulus
		i++
	}

	return sum
}
