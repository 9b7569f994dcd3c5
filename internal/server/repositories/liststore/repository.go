// Package liststore is the storage contract for the backing list: an ordered
// list of opaque string items under a fixed key. It is the only persistence
// primitive the service has; there is no per-item update.
//
// Indexes follow Redis list semantics: both ends are inclusive and negative
// values count from the end (-1 is the last item).
package liststore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promptmarket/internal/common"
)

type Store interface {
	// PushFront inserts item at index 0.
	PushFront(ctx context.Context, key string, item string) error

	// Range returns items in [start, stop] in front-to-back order.
	Range(ctx context.Context, key string, start, stop int64) ([]string, error)

	// Trim keeps only the items in [start, stop].
	Trim(ctx context.Context, key string, start, stop int64) error

	// Clear removes the list entirely.
	Clear(ctx context.Context, key string) error
}

// Swapper is implemented by stores that can replace a whole list atomically.
// Swap writes items only if the list still equals expected, otherwise it
// returns common.ErrVersionConflict and leaves the list untouched.
type Swapper interface {
	Swap(ctx context.Context, key string, expected, items []string) error
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// bounds converts inclusive Redis-style indexes into a half-open [lo, hi)
// range over a list of n items. An empty range yields lo == hi.
func bounds(start, stop int64, n int) (lo, hi int) {
	size := int64(n)
	if start < 0 {
		start += size
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += size
	}
	if stop >= size {
		stop = size - 1
	}
	if start > stop || start >= size {
		return 0, 0
	}
	return int(start), int(stop) + 1
}

func sliceRange(items []string, start, stop int64) []string {
	lo, hi := bounds(start, stop, len(items))
	out := make([]string, hi-lo)
	copy(out, items[lo:hi])
	return out
}

func storeErr(op, key string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, key, common.ErrStore, err)
}
