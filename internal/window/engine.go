package window

import (
	"context"
	"time"

	"github.com/rzbill/tally/internal/ledger"
)

// Engine answers "how many events occurred in the last N hours" over a
// Ledger. It holds no state of its own.
type Engine struct {
	store ledger.Ledger
}

// New returns an Engine reading from store.
func New(store ledger.Ledger) *Engine {
	return &Engine{store: store}
}

// CountWithin returns the number of records whose generation timestamp falls
// within the trailing window of the given size ending at now. The comparison
// is exact against each stored timestamp. Records dated after now count as
// within any window: their elapsed time is negative, and clock skew from
// externally supplied timestamps is accepted rather than corrected.
func (e *Engine) CountWithin(ctx context.Context, hours float64, now time.Time) (int64, error) {
	recs, err := e.store.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	limit := time.Duration(hours * float64(time.Hour))
	var n int64
	for _, r := range recs {
		if now.Sub(r.At) <= limit {
			n++
		}
	}
	return n, nil
}
