package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/woodtho/charge/types"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 16, hour, minute, 0, 0, time.UTC)
}

func TestEnricher_Workload(t *testing.T) {
	e := New(DefaultWeights(), nil)

	tests := []struct {
		name string
		tags types.Tags
		want float64
	}{
		{"untagged", types.Tags{}, 1.0},
		{"discharge", types.Tags{Discharge: true}, 0.75},
		{"baby in scn", types.Tags{BabyInSCN: true}, 0.75},
		{"gyn", types.Tags{Gyn: true}, 0.85},
		{"bfi", types.Tags{BFI: true}, 1.4},
		{"cs", types.Tags{CS: true}, 1.55},
		{"vag", types.Tags{Vag: true}, 1.2},
		{"cs and bfi add up", types.Tags{CS: true, BFI: true}, 1.95},
		{"discharge scn gyn", types.Tags{Discharge: true, BabyInSCN: true, Gyn: true}, 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, e.Workload(tt.tags), 1e-9)
		})
	}

	t.Run("floor applies", func(t *testing.T) {
		w := DefaultWeights()
		w.Discharge = -2
		e := New(w, nil)
		require.InDelta(t, 0.2, e.Workload(types.Tags{Discharge: true}), 1e-9)
	})
}

func TestEnricher_GroupKey(t *testing.T) {
	e := New(DefaultWeights(), []string{"A", "B"})

	require.Equal(t, "A", e.GroupKey("A-1"))
	require.Equal(t, "A", e.GroupKey("A-4"))
	require.Equal(t, "B", e.GroupKey("B-2"))
	require.Equal(t, "C-1", e.GroupKey("C-1"), "unknown prefix is its own group")
	require.Equal(t, "12", e.GroupKey("12"), "single-bed room is its own group")
	require.Equal(t, "A-", e.GroupKey("A-"), "empty suffix")
	require.Equal(t, "-1", e.GroupKey("-1"), "empty prefix")
}

func TestEffectiveLoad(t *testing.T) {
	require.InDelta(t, 1.0, EffectiveLoad(1.0, at(0, 0)), 1e-9)
	require.InDelta(t, 1.5, EffectiveLoad(1.0, at(12, 0)), 1e-9)
	require.InDelta(t, 2*(1+510.0/1440), EffectiveLoad(2.0, at(8, 30)), 1e-9)

	require.Greater(t, EffectiveLoad(1.0, at(18, 0)), EffectiveLoad(1.0, at(6, 0)),
		"later rooms carry more load")
}

func TestHashKey(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		require.Equal(t, uint64(15564), HashKey("5", at(8, 30)))

		zone := time.FixedZone("AEST", 10*60*60)
		require.Equal(t, uint64(24361), HashKey("A-3", time.Date(2026, 10, 16, 23, 59, 0, 0, zone)))
	})

	t.Run("hashes the RFC3339 rendering in the record's zone", func(t *testing.T) {
		positional := func(s string) uint64 {
			var sum uint64
			for i, c := range []rune(s) {
				sum += (uint64(c) * uint64((i+1)%97+1)) % 104729
			}

			return sum
		}

		utc := time.Date(2026, 10, 16, 7, 30, 0, 0, time.UTC)
		aest := utc.In(time.FixedZone("AEST", 10*60*60))

		require.Equal(t, positional("7|2026-10-16T07:30:00Z"), HashKey("7", utc))
		require.Equal(t, positional("7|2026-10-16T17:30:00+10:00"), HashKey("7", aest))
		require.NotEqual(t, HashKey("7", utc), HashKey("7", aest), "same instant, different zone")
	})

	t.Run("truncated to the minute", func(t *testing.T) {
		base := at(9, 15)
		require.Equal(t, HashKey("7", base), HashKey("7", base.Add(42*time.Second)))
	})

	t.Run("depends on room and time", func(t *testing.T) {
		require.NotEqual(t, HashKey("7", at(9, 15)), HashKey("8", at(9, 15)))
		require.NotEqual(t, HashKey("7", at(9, 15)), HashKey("7", at(9, 16)))
	})
}

func TestEnricher_EnrichAll(t *testing.T) {
	e := New(DefaultWeights(), []string{"A"})
	records := []types.RoomRecord{
		{Room: "A-2", Time: at(6, 0), Tags: types.Tags{CS: true}},
		{Room: "9", Time: at(12, 0)},
	}

	rooms := e.EnrichAll(records)

	require.Len(t, rooms, 2)
	require.Equal(t, "A-2", rooms[0].Room)
	require.Equal(t, "A", rooms[0].GroupKey)
	require.InDelta(t, 1.55, rooms[0].Workload, 1e-9)
	require.InDelta(t, 1.55*1.25, rooms[0].EffectiveLoad, 1e-9)
	require.Equal(t, HashKey("A-2", at(6, 0)), rooms[0].HashKey)

	require.Equal(t, "9", rooms[1].GroupKey)
	require.InDelta(t, 1.5, rooms[1].EffectiveLoad, 1e-9)
}
