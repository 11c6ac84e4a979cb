// Package log provides structured logging for Tally components.
//
// Loggers are constructed explicitly and passed by dependency injection;
// there is no package-level default. Entries carry typed fields and are
// rendered by a Formatter (text or JSON) to one or more Outputs.
//
// Example:
//
//	logger := log.NewLogger(log.WithLevel(log.InfoLevel), log.WithFormatter(&log.TextFormatter{}))
//	logger.Info("server started", log.Str("http", ":8080"))
//	svcLogger := logger.With(log.Component("ledger"))
package log
