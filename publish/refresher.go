package publish

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/woodtho/charge/internal/logging"
	"github.com/woodtho/charge/types"
)

// DefaultRefreshInterval is used when a Refresher is created with a non-positive interval.
const DefaultRefreshInterval = time.Minute

// AllocateFunc produces the roster to publish, typically by calling
// Allocator.AllocateFrom with the ward's room source.
type AllocateFunc func(ctx context.Context) (*types.Result, error)

// Refresher re-runs an allocation on a fixed interval and publishes the result.
//
// Rooms change during a shift as patients are admitted and discharged. A ward
// display backed by a Refresher always shows the latest allocation; unchanged
// results are skipped by the publisher, so watchers only wake on real changes.
type Refresher struct {
	pub       *KVPublisher
	rosterKey string
	allocate  AllocateFunc
	interval  time.Duration
	timeout   time.Duration
	logger    types.Logger

	mu       sync.Mutex
	started  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	ticker   *time.Ticker
	lastRev  uint64
	failures int
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithRefreshLogger sets the logger used for failed refreshes.
func WithRefreshLogger(logger types.Logger) RefresherOption {
	return func(r *Refresher) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRefreshTimeout bounds each background allocate-and-publish round (default 5s).
func WithRefreshTimeout(timeout time.Duration) RefresherOption {
	return func(r *Refresher) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewRefresher creates a Refresher.
//
// Parameters:
//   - pub: Publisher the roster is written through
//   - rosterKey: Roster key every round publishes under
//   - allocate: Produces the roster for each round
//   - interval: Time between rounds (<= 0 means DefaultRefreshInterval)
//   - opts: WithRefreshLogger, WithRefreshTimeout
//
// Returns:
//   - *Refresher: Stopped refresher; call Start to begin
//
// Example:
//
//	r := publish.NewRefresher(pub, "2026-10-16.day", func(ctx context.Context) (*charge.Result, error) {
//	    return alloc.AllocateFrom(ctx, src, nurses)
//	}, 30*time.Second)
//	if err := r.Start(ctx); err != nil { /* handle */ }
//	defer r.Stop()
func NewRefresher(pub *KVPublisher, rosterKey string, allocate AllocateFunc, interval time.Duration, opts ...RefresherOption) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	r := &Refresher{
		pub:       pub,
		rosterKey: rosterKey,
		allocate:  allocate,
		interval:  interval,
		timeout:   5 * time.Second,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Start publishes the first roster immediately, then keeps refreshing in the
// background until Stop is called.
//
// Parameters:
//   - ctx: Context for the first round only
//
// Returns:
//   - error: ErrAlreadyStarted if running, or the first round's failure (the
//     refresher is left stopped in that case)
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}

	rev, err := r.refresh(ctx)
	if err != nil {
		return fmt.Errorf("initial roster refresh: %w", err)
	}
	r.lastRev = rev

	r.started = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	r.ticker = time.NewTicker(r.interval)

	go r.loop(r.ticker, r.stopCh, r.doneCh)

	return nil
}

// Stop halts background refreshes and waits for an in-flight round to finish.
// The last published roster stays in the bucket.
//
// Returns:
//   - error: ErrNotStarted if not running
func (r *Refresher) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()

		return ErrNotStarted
	}

	r.ticker.Stop()
	close(r.stopCh)
	r.started = false
	done := r.doneCh
	r.mu.Unlock()

	<-done

	return nil
}

// IsStarted reports whether background refreshes are running.
func (r *Refresher) IsStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.started
}

// LastRevision returns the KV revision of the most recent successful round.
func (r *Refresher) LastRevision() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lastRev
}

// Failures returns how many background rounds have failed since Start.
func (r *Refresher) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.failures
}

func (r *Refresher) loop(ticker *time.Ticker, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			rev, err := r.refresh(ctx)
			cancel()

			r.mu.Lock()
			if err != nil {
				r.failures++
			} else {
				r.lastRev = rev
			}
			r.mu.Unlock()

			if err == nil {
				continue
			}
			if IsConnectivityError(err) {
				r.logger.Warn("roster refresh deferred, broker unreachable", "roster", r.rosterKey, "error", err)
			} else {
				r.logger.Error("roster refresh failed", "roster", r.rosterKey, "error", err)
			}
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) (uint64, error) {
	res, err := r.allocate(ctx)
	if err != nil {
		return 0, fmt.Errorf("allocate: %w", err)
	}

	return r.pub.Publish(ctx, r.rosterKey, res)
}
