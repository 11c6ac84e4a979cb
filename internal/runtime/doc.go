// Package runtime wires config, logging, the ledger store, and the window
// engine into a single Tally instance. The ledger is constructed exactly once
// here and handed to every consumer by reference; no component reaches for a
// hidden process-wide singleton.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	total, _ := rt.Ledger().Append(ctx, rec)
package runtime
