// Package httpserver provides the JSON HTTP surface for Tally: event ingest,
// trailing-window statistics, and health. It enriches incoming events with
// the client address and generation timestamp, and optionally rate limits
// ingest per client.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{Config: config.Default(), Logger: logger})
//	s := httpserver.New(rt, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver
