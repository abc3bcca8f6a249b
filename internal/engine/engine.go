// Package engine runs the phased room allocation.
//
// One call to Run is a single synchronous pass: enrich the rooms, plan capacities,
// split rooms into phases, then place every room with round-robin selection
// (discharge, under_24, over_24) or scored selection (everything else). All per-run
// state is created inside Run, so an Engine may serve concurrent calls.
package engine

import (
	"fmt"
	"maps"

	"github.com/woodtho/charge/internal/capacity"
	"github.com/woodtho/charge/internal/enrich"
	"github.com/woodtho/charge/internal/logging"
	"github.com/woodtho/charge/internal/phase"
	"github.com/woodtho/charge/strategy"
	"github.com/woodtho/charge/types"
)

// PhaseObserver receives a copy of the assignment map after each phase completes.
type PhaseObserver func(p phase.Phase, snapshot types.AssignmentMap)

// PhaseCount records how many rooms a phase placed.
type PhaseCount struct {
	Phase phase.Phase
	Rooms int
}

// Outcome is the raw result of one run.
type Outcome struct {
	// Assignments maps room id to nurse id.
	Assignments types.AssignmentMap

	// Nurses holds the final nurse states in id order.
	Nurses []*types.NurseState

	// Rooms holds the enriched rooms in input order.
	Rooms []types.EnrichedRoom

	// Phases lists per-phase placement counts in processing order.
	Phases []PhaseCount
}

// Engine drives the allocation phases.
type Engine struct {
	enricher   *enrich.Enricher
	roundRobin *strategy.RoundRobin
	scorer     *strategy.Scorer
	logger     types.Logger
	observer   PhaseObserver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger types.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPhaseObserver registers a callback invoked after every phase.
func WithPhaseObserver(observer PhaseObserver) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// New creates an Engine.
//
// Parameters:
//   - enricher: Computes per-room derived values
//   - scorer: Scored selector for the catch-all phase
//   - opts: Optional configuration (WithLogger, WithPhaseObserver)
//
// Returns:
//   - *Engine: Ready-to-use engine
func New(enricher *enrich.Enricher, scorer *strategy.Scorer, opts ...Option) *Engine {
	e := &Engine{
		enricher:   enricher,
		roundRobin: strategy.NewRoundRobin(),
		scorer:     scorer,
		logger:     logging.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	return e
}

// run is the state owned by a single Run call.
type run struct {
	nurses      []*types.NurseState
	assignments types.AssignmentMap
}

// Run allocates every record to one of nurseCount nurses.
//
// Parameters:
//   - records: Validated room rows; ids must be unique
//   - nurseCount: Number of nurses (>= 1)
//
// Returns:
//   - *Outcome: Assignment map, final nurse states and per-phase counts
//   - error: types.ErrInvalidNurseCount for nurseCount < 1; types.ErrCapacityExhausted or
//     types.ErrRoomAlreadyAssigned (wrapped with phase and room) on an internal inconsistency
func (e *Engine) Run(records []types.RoomRecord, nurseCount int) (*Outcome, error) {
	if nurseCount < 1 {
		return nil, fmt.Errorf("engine: %d nurses: %w", nurseCount, types.ErrInvalidNurseCount)
	}

	rooms := e.enricher.EnrichAll(records)
	quotas := capacity.Plan(len(rooms), nurseCount)

	r := &run{
		nurses:      make([]*types.NurseState, nurseCount),
		assignments: make(types.AssignmentMap, len(rooms)),
	}
	for i, q := range quotas {
		r.nurses[i] = types.NewNurseState(i+1, q)
	}

	outcome := &Outcome{Rooms: rooms}

	var cursor strategy.Cursor
	for _, group := range phase.Sequence(rooms) {
		var err error
		if group.Phase.RoundRobin() {
			cursor, err = e.runRoundRobin(r, group, cursor)
		} else {
			err = e.runScored(r, group)
		}
		if err != nil {
			return nil, err
		}

		outcome.Phases = append(outcome.Phases, PhaseCount{Phase: group.Phase, Rooms: len(group.Rooms)})
		e.logger.Debug("allocation phase complete",
			"phase", group.Phase.String(),
			"rooms", len(group.Rooms),
			"cursor", int(cursor),
		)

		if e.observer != nil {
			e.observer(group.Phase, maps.Clone(r.assignments))
		}
	}

	outcome.Assignments = r.assignments
	outcome.Nurses = r.nurses

	e.logger.Debug("allocation complete", "rooms", len(rooms), "nurses", nurseCount)

	return outcome, nil
}

func (e *Engine) runRoundRobin(r *run, group phase.Group, cursor strategy.Cursor) (strategy.Cursor, error) {
	for _, room := range group.Rooms {
		idx, next, err := e.roundRobin.Select(room, r.nurses, cursor)
		if err != nil {
			return cursor, fmt.Errorf("phase %s: room %s: %w", group.Phase, room.Room, err)
		}

		if err := r.assign(room, idx); err != nil {
			return cursor, fmt.Errorf("phase %s: %w", group.Phase, err)
		}
		cursor = next
	}

	return cursor, nil
}

func (e *Engine) runScored(r *run, group phase.Group) error {
	for _, room := range group.Rooms {
		idx, err := e.scorer.Select(room, r.nurses)
		if err != nil {
			return fmt.Errorf("phase %s: room %s: %w", group.Phase, room.Room, err)
		}

		if err := r.assign(room, idx); err != nil {
			return fmt.Errorf("phase %s: %w", group.Phase, err)
		}
	}

	return nil
}

// assign records room against the nurse at idx. It is the only place nurse state
// and the assignment map change.
func (r *run) assign(room types.EnrichedRoom, idx int) error {
	if prev, ok := r.assignments[room.Room]; ok {
		return fmt.Errorf("room %s held by nurse %d: %w", room.Room, prev, types.ErrRoomAlreadyAssigned)
	}

	nurse := r.nurses[idx]
	if !nurse.Assign(room) {
		return fmt.Errorf("room %s: nurse %d full: %w", room.Room, nurse.ID, types.ErrCapacityExhausted)
	}
	r.assignments[room.Room] = nurse.ID

	return nil
}
