// Package cache holds recently computed allocation results.
package cache

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/woodtho/charge/internal/hash"
	"github.com/woodtho/charge/types"
)

// DefaultMaxEntries bounds a Results cache created with a non-positive limit.
const DefaultMaxEntries = 128

// Results is a concurrent, size-bounded cache of allocation results keyed by input digest.
//
// Stored and returned results are deep copies, so callers never share state. When
// the cache is full the next Put clears it; allocations are cheap to recompute and
// the cache only exists to absorb repeated identical requests.
type Results struct {
	entries    *xsync.Map[hash.Key, *types.Result]
	maxEntries int
	evictions  atomic.Int64
}

// NewResults creates an empty cache holding at most maxEntries results.
func NewResults(maxEntries int) *Results {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &Results{
		entries:    xsync.NewMap[hash.Key, *types.Result](),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached result for key.
func (c *Results) Get(key hash.Key) (*types.Result, bool) {
	res, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	return res.Clone(), true
}

// Put stores a copy of res under key.
func (c *Results) Put(key hash.Key, res *types.Result) {
	if res == nil {
		return
	}

	if _, exists := c.entries.Load(key); !exists && c.entries.Size() >= c.maxEntries {
		c.entries.Clear()
		c.evictions.Add(1)
	}

	c.entries.Store(key, res.Clone())
}

// Len returns the number of cached results.
func (c *Results) Len() int {
	return c.entries.Size()
}

// Evictions returns how many times the cache was cleared for space.
func (c *Results) Evictions() int64 {
	return c.evictions.Load()
}
