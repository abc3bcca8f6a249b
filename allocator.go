package charge

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/woodtho/charge/internal/cache"
	"github.com/woodtho/charge/internal/engine"
	"github.com/woodtho/charge/internal/enrich"
	"github.com/woodtho/charge/internal/hash"
	"github.com/woodtho/charge/internal/logging"
	"github.com/woodtho/charge/internal/metrics"
	"github.com/woodtho/charge/internal/view"
	"github.com/woodtho/charge/strategy"
	"github.com/woodtho/charge/types"
)

// Allocator assigns occupied rooms to nurses.
//
// An Allocator is immutable after construction and safe for concurrent use. Every
// call builds its own nurse state; the only shared structure is the optional
// result cache, which hands out copies. The cache is private to one Allocator, so
// its key covers only the rows and the nurse count.
type Allocator struct {
	cfg     Config
	engine  *engine.Engine
	views   *view.Builder
	cache   *cache.Results
	metrics MetricsCollector
	logger  Logger
}

// NewAllocator creates an Allocator.
//
// Missing configuration values are filled in with defaults before validation; cfg
// itself is not modified.
//
// Parameters:
//   - cfg: Configuration (see DefaultConfig)
//   - opts: Optional configuration (WithLogger, WithMetrics, WithResultCache)
//
// Returns:
//   - *Allocator: Ready-to-use allocator
//   - error: ErrInvalidConfig if cfg is nil or fails validation
//
// Example:
//
//	cfg := charge.DefaultConfig()
//	cfg.Timezone = "Australia/Brisbane"
//	alloc, err := charge.NewAllocator(&cfg, charge.WithLogger(charge.NewZapLogger(zap.NewExample())))
//	if err != nil { /* handle */ }
//	res, err := alloc.Allocate(rooms, 3)
func NewAllocator(cfg *Config, opts ...Option) (*Allocator, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	c := *cfg
	c.BayPrefixes = slices.Clone(cfg.BayPrefixes)
	SetDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	loc, err := c.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := &allocatorOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	c.ValidateWithWarnings(loggerInstance)

	scorer := strategy.NewScorer(
		strategy.WithAdjacencyDiscount(c.Scoring.AdjacencyDiscount),
		strategy.WithBFIPenalty(c.Scoring.BFIPenalty),
		strategy.WithCSPenalty(c.Scoring.CSPenalty),
		strategy.WithScorerLogger(loggerInstance),
	)

	a := &Allocator{
		cfg:     c,
		engine:  engine.New(enrich.New(c.weights(), c.BayPrefixes), scorer, engine.WithLogger(loggerInstance)),
		views:   view.NewBuilder(loc),
		metrics: metricsCollector,
		logger:  loggerInstance,
	}

	if c.Cache.Enabled || options.cacheOn {
		bound := c.Cache.MaxEntries
		if options.cacheBound > 0 {
			bound = options.cacheBound
		}
		a.cache = cache.NewResults(bound)
	}

	loggerInstance.Info("allocator ready",
		"timezone", c.Timezone,
		"bay_prefixes", c.BayPrefixes,
		"cache", a.cache != nil,
	)

	return a, nil
}

// Config returns a copy of the effective configuration.
func (a *Allocator) Config() Config {
	c := a.cfg
	c.BayPrefixes = slices.Clone(a.cfg.BayPrefixes)

	return c
}

// Allocate assigns every room to one of nurseCount nurses.
//
// Rooms are trusted: ids must be unique and times already resolved. The result
// depends only on (rooms, nurseCount, configuration); row order does not matter.
//
// Parameters:
//   - rooms: Validated room rows
//   - nurseCount: Number of nurses on shift (>= 1)
//
// Returns:
//   - *Result: Assignment map, per-room and per-nurse tables, summary and fingerprint
//   - error: ErrInvalidNurseCount for nurseCount < 1; an engine fault (see IsEngineFault)
//     if an internal invariant breaks
func (a *Allocator) Allocate(rooms []RoomRecord, nurseCount int) (*Result, error) {
	start := time.Now()

	if nurseCount < 1 {
		a.metrics.RecordAllocationAttempt(false)

		return nil, fmt.Errorf("allocate: %d nurses: %w", nurseCount, ErrInvalidNurseCount)
	}

	var key hash.Key
	if a.cache != nil {
		key = hash.InputDigest(hash.Input{Records: rooms, NurseCount: nurseCount})
		if res, ok := a.cache.Get(key); ok {
			a.metrics.RecordCacheLookup(true)
			a.metrics.RecordAllocationAttempt(true)
			a.metrics.RecordAllocationDuration(time.Since(start).Seconds())
			a.logger.Debug("allocation served from cache", "key", key.String())

			return res, nil
		}
		a.metrics.RecordCacheLookup(false)
	}

	out, err := a.engine.Run(rooms, nurseCount)
	if err != nil {
		a.metrics.RecordAllocationAttempt(false)
		if types.IsEngineFault(err) {
			a.logger.Error("allocation failed", "rooms", len(rooms), "nurses", nurseCount, "error", err)
		}

		return nil, fmt.Errorf("allocate: %w", err)
	}

	tables := a.views.Build(rooms, out.Assignments, nurseCount)
	res := &Result{
		Assignments: out.Assignments,
		Rooms:       tables.Rooms,
		Nurses:      tables.Nurses,
		Summary:     tables.Summary,
		Fingerprint: hash.Fingerprint(tables.Rooms, tables.Nurses),
	}

	for _, pc := range out.Phases {
		a.metrics.RecordPhaseRooms(pc.Phase.String(), pc.Rooms)
	}
	a.metrics.RecordAllocationAttempt(true)
	a.metrics.RecordAllocationDuration(time.Since(start).Seconds())

	if a.cache != nil {
		a.cache.Put(key, res)
	}

	a.logger.Debug("allocation complete",
		"rooms", res.Summary.RoomCount,
		"nurses", res.Summary.NurseCount,
		"spread", res.Summary.Spread(),
		"fingerprint", res.Fingerprint,
	)

	return res, nil
}

// AllocateFrom reads rooms from src and allocates them.
//
// Parameters:
//   - ctx: Context for the source call; allocation itself is not cancellable
//   - src: Room source
//   - nurseCount: Number of nurses on shift (>= 1)
//
// Returns:
//   - *Result: See Allocate
//   - error: ErrRoomSourceRequired for a nil source, the wrapped source error, or any Allocate error
func (a *Allocator) AllocateFrom(ctx context.Context, src RoomSource, nurseCount int) (*Result, error) {
	if src == nil {
		return nil, ErrRoomSourceRequired
	}

	rooms, err := src.ListRooms(ctx)
	if err != nil {
		a.metrics.RecordAllocationAttempt(false)

		return nil, fmt.Errorf("list rooms: %w", err)
	}

	return a.Allocate(rooms, nurseCount)
}
