// Package strategy provides the nurse selection algorithms used by the allocation engine.
//
// Two selectors are provided, one per phase family:
//
//   - RoundRobin: cyclic selection with an explicit rotation cursor. Used by the
//     discharge, under_24 and over_24 phases. Guarantees fair assignment order and
//     avoids duplicate bfi/cs rooms when another eligible nurse exists.
//   - Scorer: cost-minimizing selection balancing projected room count and load, with
//     a small adjacency discount and soft bfi/cs duplicate penalties. Used by the
//     catch-all phase.
//
// Both selectors consider only nurses with remaining capacity and report
// types.ErrCapacityExhausted when none is left. Neither mutates nurse state; the
// engine applies the chosen assignment.
package strategy
