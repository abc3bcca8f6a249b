package publish

import (
	"context"
	"errors"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var (
	// ErrSnapshotNotFound is returned when no roster has been published under a key.
	ErrSnapshotNotFound = errors.New("roster snapshot not found")

	// ErrInvalidRosterKey is returned when a roster key cannot be used as a KV key.
	ErrInvalidRosterKey = errors.New("invalid roster key")

	// ErrNilResult is returned when Publish is called without a result.
	ErrNilResult = errors.New("result is required")
)

// Bucket errors.
var (
	// ErrInvalidBucketName is returned when a bucket name cannot be used by JetStream.
	ErrInvalidBucketName = errors.New("invalid roster bucket name")

	// ErrInvalidBucketConfig is returned for bucket settings JetStream rejects.
	ErrInvalidBucketConfig = errors.New("invalid roster bucket config")

	// ErrBucketUnavailable is returned when the bucket could not be opened or created.
	ErrBucketUnavailable = errors.New("roster bucket unavailable")
)

// Refresher lifecycle errors.
var (
	ErrNotStarted     = errors.New("refresher not started")
	ErrAlreadyStarted = errors.New("refresher already started")
)

// IsConnectivityError reports whether err comes from losing the NATS connection
// rather than from the data being published.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true for timeouts, missing servers, disconnects and refused connections
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}
