package ledger

import (
	"context"
	"errors"
)

// ErrInvalidQuantity is returned when an append carries a non-positive
// quantity. Upstream validation should catch this first; the ledger still
// refuses such records rather than silently coercing them.
var ErrInvalidQuantity = errors.New("ledger: quantity must be a positive integer")

// Ledger is the shared, append-only store of event records plus a running
// total of quantities. A single instance is constructed at process start and
// injected into every producer and reader; callers never hold references to
// the internal sequence.
type Ledger interface {
	// Append stores the record and returns the updated running total. The
	// push and the total increment form one atomic step: two concurrent
	// appends never interleave, and neither update is lost.
	Append(ctx context.Context, rec Record) (int64, error)

	// Total returns the current running total, always consistent with some
	// fully-applied set of appends.
	Total(ctx context.Context) (int64, error)

	// Snapshot returns a read-consistent copy of all stored records in
	// arrival order.
	Snapshot(ctx context.Context) ([]Record, error)
}
