// Package storage keeps the history of benchmark runs.
//
// Reports are stored in an embedded Badger database keyed by run ID.
// Run IDs are ULIDs, so key order is start-time order and listing newest
// first is a reverse prefix scan.
package storage
