// Package ledger implements Tally's append-only event ledger.
//
// # Overview
//
// A Ledger stores timestamped event records in arrival order together with a
// running total of their quantities. Appends and reads are serialized so that
// the total always equals the sum of quantities of the stored records at
// every observable point, including under concurrent producers.
//
// Two implementations are provided:
//   - Memory: a single-process store guarded by one mutex. Records live for
//     the lifetime of the process; nothing is evicted or persisted.
//   - Redis: a cross-process store for deployments where several workers
//     must share one ledger and a language-local lock cannot serve.
//
// API surface (internal)
//
//	l := ledger.NewMemory()
//	total, _ := l.Append(ctx, ledger.Record{Kind: ledger.KindVisit, Quantity: 1, At: time.Now()})
//	_ = total // running total including this record
//
//	recs, _ := l.Snapshot(ctx) // consistent copy for aggregation
//	n, _ := l.Total(ctx)       // running total
package ledger
