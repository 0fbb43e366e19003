// Package pipeline runs a catalogue fetch as a sequence of steps.
//
// A fetch downloads the catalogue (or reads it from the cache), parses every
// planet element, filters out incomplete and pre-1990 entries, writes the
// planet table and finally records the run in the history database. Each
// stage is a Step that receives the current *model.FetchRun and fills in
// its part of it.
//
// Fetcher wires the standard steps together and exposes the fetch
// operation as Fetch(ctx, outputPath) returning the number of rows written.
package pipeline
