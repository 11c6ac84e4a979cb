package ledger

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestEmptyLedger(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	n, err := l.Total(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if n != 0 {
		t.Fatalf("want total 0, got %d", n)
	}
	recs, err := l.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("want empty snapshot, got %d records", len(recs))
	}
}

func TestAppendCountsQuantity(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	total, err := l.Append(ctx, Record{Kind: KindPurchase, Quantity: 3, At: time.Now()})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if total != 3 {
		t.Fatalf("want total 3, got %d", total)
	}
	if l.Len() != 1 {
		t.Fatalf("want 1 record, got %d", l.Len())
	}
	total, err = l.Append(ctx, Record{Kind: KindVisit, Quantity: 1, At: time.Now()})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if total != 4 {
		t.Fatalf("want total 4, got %d", total)
	}
	if l.Len() != 2 {
		t.Fatalf("want 2 records, got %d", l.Len())
	}
}

func TestAppendRejectsInvalidQuantity(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	for _, q := range []int64{0, -1, -100} {
		if _, err := l.Append(ctx, Record{Kind: KindPurchase, Quantity: q, At: time.Now()}); err != ErrInvalidQuantity {
			t.Fatalf("quantity %d: want ErrInvalidQuantity, got %v", q, err)
		}
	}
	if n, _ := l.Total(ctx); n != 0 {
		t.Fatalf("rejected appends must not change the total, got %d", n)
	}
	if l.Len() != 0 {
		t.Fatalf("rejected appends must not store records, got %d", l.Len())
	}
}

func TestNoLostUpdates(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	const writers = 100
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Append(ctx, Record{Kind: KindVisit, Quantity: 1, At: time.Now()}); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()
	if n, _ := l.Total(ctx); n != writers {
		t.Fatalf("want total %d, got %d", writers, n)
	}
	if l.Len() != writers {
		t.Fatalf("want %d records, got %d", writers, l.Len())
	}
}

func TestConservationWithQuantities(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	var want int64
	var wg sync.WaitGroup
	for q := int64(1); q <= 50; q++ {
		want += q
		wg.Add(1)
		go func(q int64) {
			defer wg.Done()
			if _, err := l.Append(ctx, Record{Kind: KindPurchase, Quantity: q, At: time.Now()}); err != nil {
				t.Errorf("append q=%d: %v", q, err)
			}
		}(q)
	}
	wg.Wait()
	if n, _ := l.Total(ctx); n != want {
		t.Fatalf("want total %d, got %d", want, n)
	}
}

// TestReadConsistency takes totals and snapshots while writers are running
// and checks that every observed total equals the quantity sum of some
// fully-applied set of appends.
func TestReadConsistency(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_, _ = l.Append(ctx, Record{Kind: KindVisit, Quantity: 2, At: time.Now()})
		}
		close(done)
	}()

	for {
		recs, err := l.Snapshot(ctx)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		var sum int64
		for _, r := range recs {
			sum += r.Quantity
		}
		// The total read after the snapshot can only be >= the snapshot sum,
		// and any intermediate value must be an even multiple of the
		// fixed quantity (no torn increments).
		total, _ := l.Total(ctx)
		if total < sum {
			t.Fatalf("total %d regressed below snapshot sum %d", total, sum)
		}
		if total%2 != 0 {
			t.Fatalf("observed torn total %d", total)
		}
		select {
		case <-done:
			wg.Wait()
			recs, _ := l.Snapshot(ctx)
			var final int64
			for _, r := range recs {
				final += r.Quantity
			}
			total, _ := l.Total(ctx)
			if total != final {
				t.Fatalf("final total %d != snapshot sum %d", total, final)
			}
			return
		default:
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	_, _ = l.Append(ctx, Record{Kind: KindVisit, Quantity: 1, At: time.Now()})
	recs, _ := l.Snapshot(ctx)
	recs[0].Quantity = 99
	again, _ := l.Snapshot(ctx)
	if again[0].Quantity != 1 {
		t.Fatalf("snapshot must not alias internal state")
	}
}

func TestArrivalOrderPreserved(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, _ = l.Append(ctx, Record{ID: string(rune('a' + i)), Kind: KindVisit, Quantity: 1, At: time.Now()})
	}
	recs, _ := l.Snapshot(ctx)
	for i, r := range recs {
		if r.ID != string(rune('a'+i)) {
			t.Fatalf("record %d out of arrival order: %q", i, r.ID)
		}
	}
}
