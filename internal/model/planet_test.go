package model

import (
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestCatalogueEntry_Planet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry CatalogueEntry
		ok    bool
	}{
		{
			name:  "complete entry",
			entry: CatalogueEntry{Name: "b", Mass: ptr(1), SemimajorAxis: ptr(2), DiscoveryYear: ptr(1995)},
			ok:    true,
		},
		{
			name:  "missing mass",
			entry: CatalogueEntry{SemimajorAxis: ptr(2), DiscoveryYear: ptr(1995)},
		},
		{
			name:  "missing semi-major axis",
			entry: CatalogueEntry{Mass: ptr(1), DiscoveryYear: ptr(1995)},
		},
		{
			name:  "missing discovery year",
			entry: CatalogueEntry{Mass: ptr(1), SemimajorAxis: ptr(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.entry.Complete(); got != tt.ok {
				t.Errorf("Complete() = %v, want %v", got, tt.ok)
			}
			p, ok := tt.entry.Planet()
			if ok != tt.ok {
				t.Fatalf("Planet() ok = %v, want %v", ok, tt.ok)
			}
			if ok && (p.Mass != 1 || p.SemimajorAxis != 2 || p.DiscoveryYear != 1995 || p.Name != "b") {
				t.Errorf("unexpected planet %+v", p)
			}
		})
	}
}

func TestPlanet_Key(t *testing.T) {
	t.Parallel()

	t.Run("uses the name", func(t *testing.T) {
		t.Parallel()
		p := Planet{Name: " 51 Peg b ", Mass: 0.47}
		if p.Key() != "51 Peg b" {
			t.Errorf("got %q", p.Key())
		}
	})

	t.Run("falls back to values", func(t *testing.T) {
		t.Parallel()
		p := Planet{Mass: 1, SemimajorAxis: 0.5, DiscoveryYear: 2001}
		want := "1.0000e+00/5.0000e-01/2.0010e+03"
		if p.Key() != want {
			t.Errorf("got %q, expected %q", p.Key(), want)
		}
	})
}

func TestPlanet_Method(t *testing.T) {
	t.Parallel()

	if got := (Planet{DiscoveryMethod: "transit"}).Method(); got != "transit" {
		t.Errorf("got %q, expected transit", got)
	}
	if got := (Planet{}).Method(); got != UnknownMethod {
		t.Errorf("got %q, expected %q", got, UnknownMethod)
	}
}

func TestNewFetchRun(t *testing.T) {
	t.Parallel()

	run := NewFetchRun("https://example.com/systems.xml.gz", "out.txt")

	if run.Source != "https://example.com/systems.xml.gz" || run.OutputPath != "out.txt" {
		t.Errorf("unexpected run %+v", run)
	}
	if run.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a random run ID")
	}
	if time.Since(run.Timestamp) > time.Second {
		t.Error("Timestamp is too old")
	}

	other := NewFetchRun("x", "y")
	if other.ID == run.ID {
		t.Error("expected distinct run IDs")
	}
}

func TestFetchRun_Records(t *testing.T) {
	t.Parallel()

	run := &FetchRun{Planets: []Planet{
		{Name: "a", Mass: 1, SemimajorAxis: 2, DiscoveryYear: 1995, DiscoveryMethod: "RV"},
		{Name: "b", Mass: 3, SemimajorAxis: 4, DiscoveryYear: 2005},
	}}

	records := run.Records()
	want := []PlanetRecord{{1, 2, 1995}, {3, 4, 2005}}
	if len(records) != len(want) {
		t.Fatalf("got %d records, expected %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %+v, expected %+v", i, records[i], want[i])
		}
	}
}
