package strategy

import (
	"github.com/woodtho/charge/internal/logging"
	"github.com/woodtho/charge/types"
)

const (
	defaultAdjacencyDiscount = 0.001
	defaultBFIPenalty        = 50.0
	defaultCSPenalty         = 75.0
)

// Scorer implements cost-minimizing nurse selection.
type Scorer struct {
	adjacencyDiscount float64
	bfiPenalty        float64
	csPenalty         float64
	logger            types.Logger
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// Totals summarizes the nurse states a score is computed against.
type Totals struct {
	// Capacity is the sum of all planned quotas.
	Capacity int

	// Assigned is the number of rooms placed so far, across all phases.
	Assigned int

	// Load is the sum of EffectiveLoad over every placed room.
	Load float64

	// Nurses is the nurse count.
	Nurses int
}

// TotalsOf computes Totals over the full nurse list.
func TotalsOf(nurses []*types.NurseState) Totals {
	t := Totals{Nurses: len(nurses)}
	for _, n := range nurses {
		t.Capacity += n.Capacity
		t.Assigned += n.Count
		t.Load += n.LoadSum
	}

	return t
}

// NewScorer creates a new scored selector.
//
// Parameters:
//   - opts: Optional configuration (WithAdjacencyDiscount, WithBFIPenalty, WithCSPenalty, WithScorerLogger)
//
// Returns:
//   - *Scorer: Initialized scorer ready for use
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		adjacencyDiscount: defaultAdjacencyDiscount,
		bfiPenalty:        defaultBFIPenalty,
		csPenalty:         defaultCSPenalty,
		logger:            logging.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.normalizeConfig()

	return s
}

// WithAdjacencyDiscount sets the score reduction for nurses already holding the room's group.
func WithAdjacencyDiscount(discount float64) ScorerOption {
	return func(s *Scorer) {
		s.adjacencyDiscount = discount
	}
}

// WithBFIPenalty sets the additive penalty for a second bfi room.
func WithBFIPenalty(penalty float64) ScorerOption {
	return func(s *Scorer) {
		s.bfiPenalty = penalty
	}
}

// WithCSPenalty sets the additive penalty for a second cs room.
func WithCSPenalty(penalty float64) ScorerOption {
	return func(s *Scorer) {
		s.csPenalty = penalty
	}
}

// WithScorerLogger sets the logger used for configuration warnings.
func WithScorerLogger(logger types.Logger) ScorerOption {
	return func(s *Scorer) {
		s.logger = logger
	}
}

// Score computes the cost of giving room to nurse. Lower is better.
//
// The base cost is the squared distance of the nurse's projected room count from
// its capacity-proportional target, plus the squared distance of its projected load
// from the mean load target. Holding the room's group subtracts the adjacency
// discount; a second bfi or cs room adds the corresponding penalty.
//
// Parameters:
//   - room: Room being placed
//   - nurse: Candidate nurse
//   - totals: Totals over all nurses before this placement
//
// Returns:
//   - float64: Cost of the placement
func (s *Scorer) Score(room types.EnrichedRoom, nurse *types.NurseState, totals Totals) float64 {
	capacityShare := 0.0
	if totals.Capacity > 0 {
		capacityShare = float64(nurse.Capacity) / float64(totals.Capacity)
	}
	projectedTarget := capacityShare * float64(totals.Assigned+1)
	countDelta := float64(nurse.Count+1) - projectedTarget

	meanLoadTarget := 0.0
	if totals.Nurses > 0 {
		meanLoadTarget = (totals.Load + room.EffectiveLoad) / float64(totals.Nurses)
	}
	loadDelta := nurse.LoadSum + room.EffectiveLoad - meanLoadTarget

	score := countDelta*countDelta + loadDelta*loadDelta

	if nurse.HoldsGroup(room.GroupKey) {
		score -= s.adjacencyDiscount
	}
	if room.Tags.BFI && nurse.HasBFI {
		score += s.bfiPenalty
	}
	if room.Tags.CS && nurse.HasCS {
		score += s.csPenalty
	}

	return score
}

// Select picks the lowest-cost nurse with remaining capacity. Ties go to the lowest
// nurse id.
//
// Parameters:
//   - room: Room being placed
//   - nurses: Nurse states in id order (index 0 is nurse 1)
//
// Returns:
//   - int: Index into nurses of the chosen nurse
//   - error: ErrNoNurses for an empty list, types.ErrCapacityExhausted when every nurse is full
func (s *Scorer) Select(room types.EnrichedRoom, nurses []*types.NurseState) (int, error) {
	if len(nurses) == 0 {
		return -1, ErrNoNurses
	}

	totals := TotalsOf(nurses)
	best := -1
	bestScore := 0.0

	for idx, nurse := range nurses {
		if nurse.Remaining <= 0 {
			continue
		}

		score := s.Score(room, nurse, totals)
		if best < 0 || score < bestScore {
			best = idx
			bestScore = score
		}
	}

	if best < 0 {
		return -1, types.ErrCapacityExhausted
	}

	return best, nil
}

func (s *Scorer) normalizeConfig() {
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	if s.adjacencyDiscount < 0 {
		s.logger.Warn("adjacency discount must not be negative; clamping to 0", "provided", s.adjacencyDiscount, "using", 0)
		s.adjacencyDiscount = 0
	}

	if s.bfiPenalty < 0 {
		s.logger.Warn("bfi penalty must not be negative; clamping to 0", "provided", s.bfiPenalty, "using", 0)
		s.bfiPenalty = 0
	}

	if s.csPenalty < 0 {
		s.logger.Warn("cs penalty must not be negative; clamping to 0", "provided", s.csPenalty, "using", 0)
		s.csPenalty = 0
	}
}
