// Package model defines the data structures shared by the catalogue fetcher,
// the fetch history database and the report writers.
//
// This package contains the following main types:
//   - CatalogueEntry: a planet element as read from the catalogue, with
//     optional numeric fields
//   - Planet: an entry that passed filtering
//   - PlanetRecord: one row of the output table
//   - FetchRun: the state and result of a single fetch
//   - Summary: statistics of a fetch run for reports
//   - CatalogueDiff: planets added and removed between two fetch runs
//
// The models are serializable to JSON for report output.
package model
