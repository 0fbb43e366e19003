package model

import (
	"fmt"
	"strings"
)

// PlanetRecord is one row of the output table.
// Field order matches the column order of the table.
type PlanetRecord struct {
	// Mass in Jupiter masses.
	Mass float64 `json:"mass"`

	// SemimajorAxis in astronomical units.
	SemimajorAxis float64 `json:"semimajor_axis"`

	// DiscoveryYear is the (possibly fractional) year of discovery.
	DiscoveryYear float64 `json:"discovery_year"`
}

// CatalogueEntry is a planet element as read from the catalogue.
// Numeric fields are nil when the element is absent or empty.
type CatalogueEntry struct {
	Name            string
	Mass            *float64
	SemimajorAxis   *float64
	DiscoveryYear   *float64
	DiscoveryMethod string
}

// Complete reports whether mass, semi-major axis and discovery year are all
// present.
func (e CatalogueEntry) Complete() bool {
	return e.Mass != nil && e.SemimajorAxis != nil && e.DiscoveryYear != nil
}

// Planet converts a complete entry. The second result is false for an
// incomplete entry.
func (e CatalogueEntry) Planet() (Planet, bool) {
	if !e.Complete() {
		return Planet{}, false
	}
	return Planet{
		Name:            e.Name,
		Mass:            *e.Mass,
		SemimajorAxis:   *e.SemimajorAxis,
		DiscoveryYear:   *e.DiscoveryYear,
		DiscoveryMethod: e.DiscoveryMethod,
	}, true
}

// Planet is a catalogue entry with all three numeric fields present.
type Planet struct {
	// Name is the primary name of the planet, possibly empty.
	Name string `json:"name,omitempty"`

	Mass          float64 `json:"mass"`
	SemimajorAxis float64 `json:"semimajor_axis"`
	DiscoveryYear float64 `json:"discovery_year"`

	// DiscoveryMethod is the raw method string of the catalogue, e.g. "RV"
	// or "transit".
	DiscoveryMethod string `json:"discovery_method,omitempty"`
}

// Record returns the table row of the planet.
func (p Planet) Record() PlanetRecord {
	return PlanetRecord{
		Mass:          p.Mass,
		SemimajorAxis: p.SemimajorAxis,
		DiscoveryYear: p.DiscoveryYear,
	}
}

// Key identifies the planet across fetch runs.
// Unnamed planets fall back to their numeric values.
func (p Planet) Key() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return fmt.Sprintf("%.4e/%.4e/%.4e", p.Mass, p.SemimajorAxis, p.DiscoveryYear)
}

// Method returns the discovery method, or "unknown" when the catalogue does
// not state one.
func (p Planet) Method() string {
	if m := strings.TrimSpace(p.DiscoveryMethod); m != "" {
		return m
	}
	return UnknownMethod
}

// UnknownMethod labels planets without a discovery method.
const UnknownMethod = "unknown"
