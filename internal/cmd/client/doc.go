// Package client provides the `tally` command-line client.
//
// The CLI talks to the Tally HTTP endpoints to record events and read
// statistics from a terminal. It is primarily intended for developers and
// operators.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it reads
// TALLY_HTTP and defaults to http://127.0.0.1:8080.
//
// Usage
//
//	tally track visit --subject u-42 --page /pricing
//	tally track purchase --subject u-42 --product p-9 --promotion spring --quantity 3
//
//	tally stats              # last hour
//	tally stats --hours 24   # last day
package client
