package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woodtho/charge/types"
)

func TestScorer_Score(t *testing.T) {
	s := NewScorer()
	nurses := newNurses(2, 2)
	room := plainRoom("a")

	t.Run("empty nurses score by count and load", func(t *testing.T) {
		// countDelta = 1 - 0.5*1 = 0.5; loadDelta = 1 - 1/2 = 0.5
		require.InDelta(t, 0.5, s.Score(room, nurses[0], TotalsOf(nurses)), 1e-9)
	})

	t.Run("adjacency discount", func(t *testing.T) {
		ns := newNurses(3, 3)
		require.True(t, ns[0].Assign(plainRoom("bay")))
		require.True(t, ns[1].Assign(plainRoom("other")))

		r := plainRoom("bay-2")
		r.GroupKey = "bay"
		totals := TotalsOf(ns)

		require.InDelta(t, s.Score(r, ns[1], totals)-0.001, s.Score(r, ns[0], totals), 1e-9)
	})

	t.Run("duplicate penalties", func(t *testing.T) {
		ns := newNurses(3, 3)
		require.True(t, ns[0].Assign(taggedRoom("x", types.Tags{BFI: true, CS: true})))
		require.True(t, ns[1].Assign(plainRoom("y")))
		totals := TotalsOf(ns)

		bfi := taggedRoom("b", types.Tags{BFI: true})
		cs := taggedRoom("c", types.Tags{CS: true})
		both := taggedRoom("d", types.Tags{BFI: true, CS: true})

		require.InDelta(t, s.Score(bfi, ns[1], totals)+50, s.Score(bfi, ns[0], totals), 1e-9)
		require.InDelta(t, s.Score(cs, ns[1], totals)+75, s.Score(cs, ns[0], totals), 1e-9)
		require.InDelta(t, s.Score(both, ns[1], totals)+125, s.Score(both, ns[0], totals), 1e-9)
	})

	t.Run("custom penalties", func(t *testing.T) {
		custom := NewScorer(WithBFIPenalty(5), WithCSPenalty(7), WithAdjacencyDiscount(0))
		ns := newNurses(2, 2)
		require.True(t, ns[0].Assign(taggedRoom("x", types.Tags{CS: true})))
		require.True(t, ns[1].Assign(plainRoom("y")))
		totals := TotalsOf(ns)

		cs := taggedRoom("c", types.Tags{CS: true})
		require.InDelta(t, custom.Score(cs, ns[1], totals)+7, custom.Score(cs, ns[0], totals), 1e-9)
	})

	t.Run("negative settings clamp to zero", func(t *testing.T) {
		clamped := NewScorer(WithBFIPenalty(-1), WithCSPenalty(-1), WithAdjacencyDiscount(-1), WithScorerLogger(nil))
		require.Zero(t, clamped.bfiPenalty)
		require.Zero(t, clamped.csPenalty)
		require.Zero(t, clamped.adjacencyDiscount)
		require.NotNil(t, clamped.logger)
	})
}

func TestScorer_Select(t *testing.T) {
	t.Run("ties go to the lowest nurse id", func(t *testing.T) {
		idx, err := NewScorer().Select(plainRoom("a"), newNurses(1, 1, 1))

		require.NoError(t, err)
		require.Equal(t, 0, idx)
	})

	t.Run("prefers the lighter nurse", func(t *testing.T) {
		nurses := newNurses(3, 3)
		require.True(t, nurses[0].Assign(plainRoom("x")))

		idx, err := NewScorer().Select(plainRoom("a"), nurses)

		require.NoError(t, err)
		require.Equal(t, 1, idx)
	})

	t.Run("penalty steers a cs room away", func(t *testing.T) {
		nurses := newNurses(3, 3)
		require.True(t, nurses[0].Assign(taggedRoom("x", types.Tags{CS: true})))
		require.True(t, nurses[1].Assign(plainRoom("y")))

		idx, err := NewScorer().Select(taggedRoom("c", types.Tags{CS: true}), nurses)

		require.NoError(t, err)
		require.Equal(t, 1, idx)
	})

	t.Run("penalized nurse still chosen when it is the only one with capacity", func(t *testing.T) {
		nurses := newNurses(2, 1)
		require.True(t, nurses[0].Assign(taggedRoom("x", types.Tags{BFI: true})))
		require.True(t, nurses[1].Assign(plainRoom("y")))

		idx, err := NewScorer().Select(taggedRoom("b", types.Tags{BFI: true}), nurses)

		require.NoError(t, err)
		require.Equal(t, 0, idx)
	})

	t.Run("skips full nurses", func(t *testing.T) {
		idx, err := NewScorer().Select(plainRoom("a"), newNurses(0, 1))

		require.NoError(t, err)
		require.Equal(t, 1, idx)
	})

	t.Run("reports capacity exhaustion", func(t *testing.T) {
		_, err := NewScorer().Select(plainRoom("a"), newNurses(0, 0))
		require.ErrorIs(t, err, types.ErrCapacityExhausted)
	})

	t.Run("rejects empty nurse list", func(t *testing.T) {
		_, err := NewScorer().Select(plainRoom("a"), nil)
		require.ErrorIs(t, err, ErrNoNurses)
	})
}

func TestTotalsOf(t *testing.T) {
	nurses := newNurses(3, 2)
	require.True(t, nurses[0].Assign(plainRoom("a")))
	require.True(t, nurses[1].Assign(plainRoom("b")))
	require.True(t, nurses[1].Assign(plainRoom("c")))

	totals := TotalsOf(nurses)

	require.Equal(t, Totals{Capacity: 5, Assigned: 3, Load: 3, Nurses: 2}, totals)
}
