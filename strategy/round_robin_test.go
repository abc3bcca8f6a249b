package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woodtho/charge/types"
)

func newNurses(capacities ...int) []*types.NurseState {
	nurses := make([]*types.NurseState, len(capacities))
	for i, c := range capacities {
		nurses[i] = types.NewNurseState(i+1, c)
	}

	return nurses
}

func plainRoom(id string) types.EnrichedRoom {
	return types.EnrichedRoom{RoomRecord: types.RoomRecord{Room: id}, GroupKey: id, Workload: 1, EffectiveLoad: 1}
}

func taggedRoom(id string, tags types.Tags) types.EnrichedRoom {
	r := plainRoom(id)
	r.Tags = tags

	return r
}

func TestRoundRobin_Select(t *testing.T) {
	t.Run("cycles through nurses in order", func(t *testing.T) {
		rr := NewRoundRobin()
		nurses := newNurses(2, 2, 2)
		var cursor Cursor

		picked := make([]int, 0, 6)
		for i := range 6 {
			idx, next, err := rr.Select(plainRoom(string(rune('a'+i))), nurses, cursor)
			require.NoError(t, err)
			require.True(t, nurses[idx].Assign(plainRoom(string(rune('a'+i)))))
			picked = append(picked, idx)
			cursor = next
		}

		require.Equal(t, []int{0, 1, 2, 0, 1, 2}, picked)
	})

	t.Run("skips nurses without capacity", func(t *testing.T) {
		rr := NewRoundRobin()
		nurses := newNurses(0, 1, 1)

		idx, next, err := rr.Select(plainRoom("a"), nurses, 0)

		require.NoError(t, err)
		require.Equal(t, 1, idx)
		require.Equal(t, Cursor(2), next)
	})

	t.Run("cursor wraps around", func(t *testing.T) {
		rr := NewRoundRobin()
		nurses := newNurses(1, 1, 1)

		idx, next, err := rr.Select(plainRoom("a"), nurses, 2)

		require.NoError(t, err)
		require.Equal(t, 2, idx)
		require.Equal(t, Cursor(0), next)
	})

	t.Run("avoids a second bfi room", func(t *testing.T) {
		rr := NewRoundRobin()
		nurses := newNurses(2, 2)
		require.True(t, nurses[0].Assign(taggedRoom("x", types.Tags{BFI: true})))

		idx, next, err := rr.Select(taggedRoom("y", types.Tags{BFI: true}), nurses, 0)

		require.NoError(t, err)
		require.Equal(t, 1, idx)
		require.Equal(t, Cursor(0), next)
	})

	t.Run("avoids a second cs room", func(t *testing.T) {
		rr := NewRoundRobin()
		nurses := newNurses(2, 2, 2)
		require.True(t, nurses[1].Assign(taggedRoom("x", types.Tags{CS: true})))

		idx, _, err := rr.Select(taggedRoom("y", types.Tags{CS: true}), nurses, 1)

		require.NoError(t, err)
		require.Equal(t, 2, idx)
	})

	t.Run("falls back to first eligible when all would duplicate", func(t *testing.T) {
		rr := NewRoundRobin()
		nurses := newNurses(2, 2)
		require.True(t, nurses[0].Assign(taggedRoom("x", types.Tags{BFI: true})))
		require.True(t, nurses[1].Assign(taggedRoom("y", types.Tags{BFI: true})))

		idx, next, err := rr.Select(taggedRoom("z", types.Tags{BFI: true}), nurses, 1)

		require.NoError(t, err)
		require.Equal(t, 1, idx)
		require.Equal(t, Cursor(0), next)
	})

	t.Run("reports capacity exhaustion", func(t *testing.T) {
		rr := NewRoundRobin()

		_, next, err := rr.Select(plainRoom("a"), newNurses(0, 0), 1)

		require.ErrorIs(t, err, types.ErrCapacityExhausted)
		require.Equal(t, Cursor(1), next)
	})

	t.Run("rejects empty nurse list", func(t *testing.T) {
		_, _, err := NewRoundRobin().Select(plainRoom("a"), nil, 0)
		require.ErrorIs(t, err, ErrNoNurses)
	})
}
