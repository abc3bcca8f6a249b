package publish

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Roster bucket defaults.
const (
	// DefaultBucket is the KV bucket rosters are published to when none is configured.
	DefaultBucket = "charge-rosters"

	// DefaultHistory keeps the last revisions of every roster so a display can show
	// what changed since the start of the shift.
	DefaultHistory = 16

	// DefaultBucketAttempts bounds how often OpenBucket retries a transient failure.
	DefaultBucketAttempts = 3

	bucketDescription = "charge roster snapshots"
)

var bucketNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// BucketConfig describes the KV bucket rosters live in.
type BucketConfig struct {
	// Name of the bucket (default DefaultBucket). Letters, digits, "-" and "_" only.
	Name string

	// History is the number of revisions kept per roster (default DefaultHistory, max 64).
	History uint8

	// TTL expires rosters that are not republished. Zero keeps them forever.
	TTL time.Duration

	// Storage is file storage unless set to jetstream.MemoryStorage.
	Storage jetstream.StorageType

	// Replicas for clustered servers (default 1).
	Replicas int

	// Attempts bounds retries of transient failures (default DefaultBucketAttempts).
	Attempts int
}

func (c BucketConfig) withDefaults() BucketConfig {
	if c.Name == "" {
		c.Name = DefaultBucket
	}
	if c.History == 0 {
		c.History = DefaultHistory
	}
	if c.Replicas <= 0 {
		c.Replicas = 1
	}
	if c.Attempts <= 0 {
		c.Attempts = DefaultBucketAttempts
	}

	return c
}

func (c BucketConfig) keyValueConfig() jetstream.KeyValueConfig {
	return jetstream.KeyValueConfig{
		Bucket:      c.Name,
		Description: bucketDescription,
		History:     c.History,
		TTL:         c.TTL,
		Storage:     c.Storage,
		Replicas:    c.Replicas,
	}
}

// OpenBucket opens the roster bucket, creating it on first use.
//
// Ward displays usually find the bucket already there, so it is opened first and
// only created when missing. Two processes creating it at once is not an error:
// the loser opens the winner's bucket. Settings of an existing bucket are never
// changed.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - cfg: Bucket settings; zero fields take the roster defaults
//
// Returns:
//   - jetstream.KeyValue: The roster bucket
//   - error: ErrInvalidBucketName for an unusable name, ErrInvalidBucketConfig for
//     settings JetStream rejects, ErrBucketUnavailable wrapping the last failure
//     once all attempts are used, or the context error
//
// Example:
//
//	kv, err := publish.OpenBucket(ctx, js, publish.BucketConfig{Name: "ward-4-rosters", TTL: 36 * time.Hour})
//	if err != nil { /* handle */ }
//	pub := publish.NewKVPublisher(kv)
func OpenBucket(ctx context.Context, js jetstream.JetStream, cfg BucketConfig) (jetstream.KeyValue, error) {
	cfg = cfg.withDefaults()

	if !bucketNamePattern.MatchString(cfg.Name) {
		return nil, fmt.Errorf("%q: %w", cfg.Name, ErrInvalidBucketName)
	}
	if cfg.History > jetstream.KeyValueMaxHistory {
		return nil, fmt.Errorf("history %d exceeds %d: %w", cfg.History, jetstream.KeyValueMaxHistory, ErrInvalidBucketConfig)
	}

	var lastErr error
	for attempt := range cfg.Attempts {
		kv, err := openOrCreate(ctx, js, cfg)
		if err == nil {
			return kv, nil
		}
		if errors.Is(err, ErrInvalidBucketConfig) {
			return nil, err
		}
		lastErr = err

		if attempt == cfg.Attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open roster bucket %s: %w", cfg.Name, ctx.Err())
		case <-time.After(bucketBackoff(attempt)):
		}
	}

	return nil, fmt.Errorf("%w: %s after %d attempts: %w", ErrBucketUnavailable, cfg.Name, cfg.Attempts, lastErr)
}

func openOrCreate(ctx context.Context, js jetstream.JetStream, cfg BucketConfig) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, cfg.Name)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, fmt.Errorf("open: %w", err)
	}

	kv, err = js.CreateKeyValue(ctx, cfg.keyValueConfig())
	switch {
	case err == nil:
		return kv, nil
	case errors.Is(err, jetstream.ErrBucketExists):
		// lost the creation race
		return js.KeyValue(ctx, cfg.Name)
	case errors.Is(err, jetstream.ErrInvalidBucketName), errors.Is(err, jetstream.ErrHistoryTooLarge):
		return nil, fmt.Errorf("%w: %w", ErrInvalidBucketConfig, err)
	default:
		return nil, fmt.Errorf("create: %w", err)
	}
}

// bucketBackoff doubles from 10ms.
func bucketBackoff(attempt int) time.Duration {
	return (10 * time.Millisecond) << min(attempt, 6)
}
