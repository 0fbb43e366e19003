package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewSummary(t *testing.T) {
	t.Parallel()

	t.Run("empty run", func(t *testing.T) {
		t.Parallel()

		run := NewFetchRun("src", "out.txt")
		run.Stats = FetchStats{Total: 3, Incomplete: 2, PreCutoff: 1}

		s := NewSummary(run)
		if s.RunID != run.ID || s.Source != "src" || s.OutputPath != "out.txt" {
			t.Errorf("unexpected header %+v", s)
		}
		if s.Stats != run.Stats {
			t.Errorf("got stats %+v, expected %+v", s.Stats, run.Stats)
		}
		if len(s.PerYear) != 0 || len(s.PerMethod) != 0 {
			t.Error("expected no breakdowns")
		}
	})

	t.Run("statistics of kept planets", func(t *testing.T) {
		t.Parallel()

		run := &FetchRun{
			ID: uuid.New(),
			Planets: []Planet{
				{Mass: 5, SemimajorAxis: 0.05, DiscoveryYear: 1995.4, DiscoveryMethod: "RV"},
				{Mass: 1, SemimajorAxis: 1.2, DiscoveryYear: 2009.7, DiscoveryMethod: "transit"},
				{Mass: 0.3, SemimajorAxis: 0.1, DiscoveryYear: 2009.1, DiscoveryMethod: "transit"},
				{Mass: 12, SemimajorAxis: 30, DiscoveryYear: 2008.0, DiscoveryMethod: "imaging"},
				{Mass: 2, SemimajorAxis: 3, DiscoveryYear: 2014.5},
			},
		}

		s := NewSummary(run)

		if s.Mass != (Range{Min: 0.3, Max: 12, Median: 2}) {
			t.Errorf("unexpected mass range %+v", s.Mass)
		}
		if s.SemimajorAxis != (Range{Min: 0.05, Max: 30, Median: 1.2}) {
			t.Errorf("unexpected semi-major axis range %+v", s.SemimajorAxis)
		}
		if s.FirstYear != 1995 || s.LastYear != 2014 {
			t.Errorf("got years %d..%d, expected 1995..2014", s.FirstYear, s.LastYear)
		}

		wantYears := []YearCount{{1995, 1}, {2008, 1}, {2009, 2}, {2014, 1}}
		if len(s.PerYear) != len(wantYears) {
			t.Fatalf("got %v, expected %v", s.PerYear, wantYears)
		}
		for i := range wantYears {
			if s.PerYear[i] != wantYears[i] {
				t.Errorf("PerYear[%d] = %+v, expected %+v", i, s.PerYear[i], wantYears[i])
			}
		}

		wantMethods := []MethodCount{{"transit", 2}, {"RV", 1}, {"imaging", 1}, {UnknownMethod, 1}}
		if len(s.PerMethod) != len(wantMethods) {
			t.Fatalf("got %v, expected %v", s.PerMethod, wantMethods)
		}
		for i := range wantMethods {
			if s.PerMethod[i] != wantMethods[i] {
				t.Errorf("PerMethod[%d] = %+v, expected %+v", i, s.PerMethod[i], wantMethods[i])
			}
		}
	})

	t.Run("does not reorder planets", func(t *testing.T) {
		t.Parallel()

		run := &FetchRun{
			Timestamp: time.Now(),
			Planets: []Planet{
				{Name: "c", Mass: 3, SemimajorAxis: 3, DiscoveryYear: 2003},
				{Name: "a", Mass: 1, SemimajorAxis: 1, DiscoveryYear: 2001},
			},
		}
		NewSummary(run)
		if run.Planets[0].Name != "c" {
			t.Error("summary must not modify the run")
		}
	})
}
