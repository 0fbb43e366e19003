// Package database provides SQLite-based storage of the fetch history.
//
// This package implements the CatalogueDB, which stores:
//   - Fetch runs with their source, digest and filter statistics
//   - The planets kept by each run, in catalogue order
//
// The history lets the history command show which planets appeared or
// disappeared between two fetches of the same catalogue.
//
// The database is a single file opened through modernc.org/sqlite, a
// CGO-free driver, in WAL mode.
package database
