package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/woodtho/charge/internal/logging"
	"github.com/woodtho/charge/types"
)

// DefaultPrefix is the key prefix roster snapshots are stored under.
const DefaultPrefix = "roster"

var rosterKeyPattern = regexp.MustCompile(`^[-/_=a-zA-Z0-9]+(\.[-/_=a-zA-Z0-9]+)*$`)

// Snapshot is the stored form of one published allocation.
type Snapshot struct {
	// RosterKey identifies the shift the roster belongs to.
	RosterKey string `json:"roster_key"`

	// PublishedAt is when the snapshot was written (UTC).
	PublishedAt time.Time `json:"published_at"`

	// Result is the allocation as returned by the Allocator.
	Result *types.Result `json:"result"`

	// Revision is the KV revision the snapshot was read from. Not stored.
	Revision uint64 `json:"-"`
}

// KVPublisher publishes allocation results to a NATS KV bucket.
//
// KVPublisher is safe for concurrent use. Publishes to the same roster key are
// serialized so the unchanged-result check and the write cannot interleave.
type KVPublisher struct {
	kv        jetstream.KeyValue
	prefix    string
	keyPrefix string // cached "prefix."
	logger    types.Logger
	now       func() time.Time

	mu sync.Mutex
}

// Option configures a KVPublisher.
type Option func(*KVPublisher)

// WithPrefix sets the key prefix (default "roster").
func WithPrefix(prefix string) Option {
	return func(p *KVPublisher) {
		p.prefix = prefix
	}
}

// WithLogger sets the publisher logger.
func WithLogger(logger types.Logger) Option {
	return func(p *KVPublisher) {
		p.logger = logger
	}
}

// WithClock overrides the clock used for PublishedAt.
func WithClock(now func() time.Time) Option {
	return func(p *KVPublisher) {
		p.now = now
	}
}

// NewKVPublisher creates a new roster publisher.
//
// Parameters:
//   - kv: NATS KV bucket for rosters (see OpenBucket)
//   - opts: Optional configuration (WithPrefix, WithLogger, WithClock)
//
// Returns:
//   - *KVPublisher: A new publisher instance
//
// Example:
//
//	kv, _ := publish.OpenBucket(ctx, js, publish.BucketConfig{Name: "ward-4"})
//	pub := publish.NewKVPublisher(kv, publish.WithLogger(logger))
//	rev, err := pub.Publish(ctx, "2026-10-16.day", res)
func NewKVPublisher(kv jetstream.KeyValue, opts ...Option) *KVPublisher {
	p := &KVPublisher{
		kv:     kv,
		prefix: DefaultPrefix,
		logger: logging.NewNop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.prefix == "" {
		p.prefix = DefaultPrefix
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.now == nil {
		p.now = time.Now
	}
	p.keyPrefix = p.prefix + "."

	return p
}

// Publish stores res as the latest snapshot for rosterKey.
//
// Publishing a result whose fingerprint matches the stored snapshot is a no-op
// and returns the existing revision, so repeated publishes of the same shift do
// not wake watchers.
//
// Parameters:
//   - ctx: Context for cancellation
//   - rosterKey: Shift identifier; dot-separated tokens of [-/_=a-zA-Z0-9]
//   - res: Allocation result
//
// Returns:
//   - uint64: KV revision holding the snapshot
//   - error: ErrInvalidRosterKey, ErrNilResult, or a wrapped KV failure
func (p *KVPublisher) Publish(ctx context.Context, rosterKey string, res *types.Result) (uint64, error) {
	key, err := p.key(rosterKey)
	if err != nil {
		return 0, err
	}
	if res == nil {
		return 0, ErrNilResult
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	existing, err := p.Latest(ctx, rosterKey)
	switch {
	case err == nil:
		if res.Fingerprint != "" && existing.Result != nil && existing.Result.Fingerprint == res.Fingerprint {
			p.logger.Debug("roster unchanged, skipping publish", "key", key, "revision", existing.Revision)

			return existing.Revision, nil
		}
	case errors.Is(err, ErrSnapshotNotFound):
	default:
		return 0, err
	}

	snapshot := Snapshot{
		RosterKey:   rosterKey,
		PublishedAt: p.now().UTC(),
		Result:      res,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal roster: %w", err)
	}

	rev, err := p.kv.Put(ctx, key, data)
	if err != nil {
		return 0, fmt.Errorf("failed to publish roster %s: %w", rosterKey, err)
	}

	p.logger.Info("roster published",
		"key", key,
		"revision", rev,
		"rooms", res.Summary.RoomCount,
		"nurses", res.Summary.NurseCount,
		"fingerprint", res.Fingerprint,
	)

	return rev, nil
}

// Latest returns the most recent snapshot for rosterKey.
//
// Returns:
//   - *Snapshot: Decoded snapshot with Revision set
//   - error: ErrSnapshotNotFound if nothing was published (or it was deleted)
func (p *KVPublisher) Latest(ctx context.Context, rosterKey string) (*Snapshot, error) {
	key, err := p.key(rosterKey)
	if err != nil {
		return nil, err
	}

	entry, err := p.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
			return nil, fmt.Errorf("%s: %w", rosterKey, ErrSnapshotNotFound)
		}

		return nil, fmt.Errorf("failed to read roster %s: %w", rosterKey, err)
	}

	return decode(entry)
}

// Rosters lists the roster keys that currently hold a snapshot, sorted.
func (p *KVPublisher) Rosters(ctx context.Context) ([]string, error) {
	keys, err := p.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("failed to list KV keys: %w", err)
	}

	rosters := make([]string, 0, len(keys))
	for _, key := range keys {
		// Other tools may share the bucket.
		if rosterKey, ok := strings.CutPrefix(key, p.keyPrefix); ok {
			rosters = append(rosters, rosterKey)
		}
	}
	slices.Sort(rosters)

	return rosters, nil
}

// Delete removes the snapshot for rosterKey. Deleting a missing roster is not an error.
func (p *KVPublisher) Delete(ctx context.Context, rosterKey string) error {
	key, err := p.key(rosterKey)
	if err != nil {
		return err
	}

	if err := p.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete roster %s: %w", rosterKey, err)
	}

	p.logger.Info("roster deleted", "key", key)

	return nil
}

func (p *KVPublisher) key(rosterKey string) (string, error) {
	if !rosterKeyPattern.MatchString(rosterKey) {
		return "", fmt.Errorf("%q: %w", rosterKey, ErrInvalidRosterKey)
	}

	return p.keyPrefix + rosterKey, nil
}

func decode(entry jetstream.KeyValueEntry) (*Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(entry.Value(), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode roster %s: %w", entry.Key(), err)
	}
	snapshot.Revision = entry.Revision()

	return &snapshot, nil
}
