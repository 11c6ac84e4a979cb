package ledger

import (
	"context"
	"sync"
)

// Memory is the in-process Ledger implementation. One mutex guards both the
// record sequence and the running total so no reader can observe a record
// without its quantity reflected in the total, or vice versa. The guard is
// held only for the in-memory push/increment/copy; no I/O happens under it.
type Memory struct {
	mu      sync.Mutex
	records []Record
	total   int64
}

// NewMemory returns an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{}
}

// Append implements Ledger.
func (m *Memory) Append(_ context.Context, rec Record) (int64, error) {
	if rec.Quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	m.total += rec.Quantity
	return m.total, nil
}

// Total implements Ledger.
func (m *Memory) Total(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, nil
}

// Snapshot implements Ledger. The returned slice is a copy; appends that
// arrive after the snapshot is taken are not reflected in it.
func (m *Memory) Snapshot(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
