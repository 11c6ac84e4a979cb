// Package window computes trailing-window counts over a ledger.
//
// A query takes a window size in hours and a reference instant, snapshots the
// ledger, and counts the records whose elapsed time at the reference instant
// is at most the window. The scan is linear on purpose: the workload is
// periodic polling, not high-frequency querying. If ledger sizes or query
// rates grow, a time-ordered index would be the next step, but client
// supplied timestamps are not guaranteed monotonic so nothing here assumes
// sorted order.
//
// Example:
//
//	eng := window.New(l)
//	n, _ := eng.CountWithin(ctx, 1.0, time.Now()) // events in the last hour
package window
