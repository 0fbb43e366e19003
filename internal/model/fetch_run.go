package model

import (
	"time"

	"github.com/google/uuid"
)

// FetchStats counts what happened to the catalogue entries of a fetch.
type FetchStats struct {
	// Total is the number of planet elements in the catalogue.
	Total int `json:"total"`

	// Incomplete is the number of entries dropped for a missing value.
	Incomplete int `json:"incomplete"`

	// PreCutoff is the number of entries dropped for an early discovery year.
	PreCutoff int `json:"pre_cutoff"`

	// Kept is the number of rows written to the table.
	Kept int `json:"kept"`
}

// FetchRun carries the state of a single catalogue fetch through the fetch
// pipeline and is persisted to the history database once it succeeds.
type FetchRun struct {
	// ID identifies the run in the history database.
	ID uuid.UUID `json:"id"`

	// Source is the catalogue URL.
	Source string `json:"source"`

	// Timestamp is when the fetch started.
	Timestamp time.Time `json:"timestamp"`

	// Digest is the hex-encoded BLAKE2b-256 digest of the downloaded
	// catalogue, as served (possibly compressed).
	Digest string `json:"digest,omitempty"`

	// OutputPath is the table file written by the run.
	OutputPath string `json:"output_path"`

	// FromCache is true if the catalogue was read from the local cache.
	FromCache bool `json:"from_cache"`

	// Raw is the downloaded catalogue.
	Raw []byte `json:"-"`

	// Entries are the planet elements parsed from Raw.
	Entries []CatalogueEntry `json:"-"`

	// Planets are the entries that passed filtering, in catalogue order.
	Planets []Planet `json:"planets,omitempty"`

	Stats FetchStats `json:"stats"`

	// Steps lists the pipeline steps that completed, in order.
	Steps []string `json:"steps,omitempty"`

	// Err is the error of the step that stopped the run, if any.
	Err error `json:"-"`
}

// NewFetchRun creates a run for the given source and output path.
func NewFetchRun(source, outputPath string) *FetchRun {
	return &FetchRun{
		ID:         uuid.New(),
		Source:     source,
		Timestamp:  time.Now(),
		OutputPath: outputPath,
	}
}

// Records returns the table rows of the kept planets.
func (r *FetchRun) Records() []PlanetRecord {
	records := make([]PlanetRecord, len(r.Planets))
	for i, p := range r.Planets {
		records[i] = p.Record()
	}
	return records
}
