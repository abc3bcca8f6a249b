package publish

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// Watch follows rosterKey and delivers every snapshot published to it.
//
// The current snapshot, if any, is delivered first. Deletions and undecodable
// entries are skipped. The channel is closed when ctx is done.
//
// Parameters:
//   - ctx: Controls the lifetime of the watch
//   - rosterKey: Shift identifier
//
// Returns:
//   - <-chan *Snapshot: Snapshot stream
//   - error: ErrInvalidRosterKey or a wrapped watcher failure
func (p *KVPublisher) Watch(ctx context.Context, rosterKey string) (<-chan *Snapshot, error) {
	key, err := p.key(rosterKey)
	if err != nil {
		return nil, err
	}

	watcher, err := p.kv.Watch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to watch roster %s: %w", rosterKey, err)
	}

	out := make(chan *Snapshot, 1)
	go func() {
		defer close(out)
		defer func() { _ = watcher.Stop() }()

		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-watcher.Updates():
				if !ok {
					return
				}
				// nil marks the end of the initial values.
				if entry == nil {
					continue
				}
				if entry.Operation() != jetstream.KeyValuePut {
					continue
				}

				snapshot, err := decode(entry)
				if err != nil {
					p.logger.Warn("skipping undecodable roster", "key", key, "error", err)
					continue
				}

				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
