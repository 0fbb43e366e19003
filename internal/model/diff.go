package model

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// RunRef identifies a fetch run in a comparison.
type RunRef struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Digest    string    `json:"digest,omitempty"`
	Kept      int       `json:"kept"`
}

// CatalogueDiff lists the planets that appeared or disappeared between two
// fetch runs.
type CatalogueDiff struct {
	Source string `json:"source"`
	From   RunRef `json:"from"`
	To     RunRef `json:"to"`

	// DigestChanged is true if the downloaded catalogues differ.
	DigestChanged bool `json:"digest_changed"`

	// Added holds planets present in To only, sorted by key.
	Added []Planet `json:"added,omitempty"`

	// Removed holds planets present in From only, sorted by key.
	Removed []Planet `json:"removed,omitempty"`
}

// NewCatalogueDiff compares the kept planets of two runs by Planet.Key.
func NewCatalogueDiff(from, to *FetchRun) *CatalogueDiff {
	d := &CatalogueDiff{
		Source:        to.Source,
		From:          refOf(from),
		To:            refOf(to),
		DigestChanged: from.Digest != to.Digest,
	}

	d.Added = missingFrom(to.Planets, from.Planets)
	d.Removed = missingFrom(from.Planets, to.Planets)
	return d
}

// HasChanges reports whether any planet was added or removed.
func (d *CatalogueDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

func refOf(r *FetchRun) RunRef {
	return RunRef{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Digest:    r.Digest,
		Kept:      len(r.Planets),
	}
}

// missingFrom returns the planets of a whose key does not occur in b.
func missingFrom(a, b []Planet) []Planet {
	keys := make(map[string]struct{}, len(b))
	for _, p := range b {
		keys[p.Key()] = struct{}{}
	}

	var out []Planet
	for _, p := range a {
		if _, ok := keys[p.Key()]; !ok {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(x, y Planet) int {
		return cmp.Compare(x.Key(), y.Key())
	})
	return out
}
