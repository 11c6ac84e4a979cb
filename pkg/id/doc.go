// Package id generates time-sortable identifiers for event records.
//
// IDs sort lexicographically in generation order within a process, which
// keeps ledger listings and log lines naturally ordered even when the wall
// clock briefly runs backwards.
package id
