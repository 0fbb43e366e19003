package model

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Range describes the spread of one numeric column.
type Range struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// YearCount is the number of kept planets discovered in a calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MethodCount is the number of kept planets found with a discovery method.
type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// Summary is the report view of a fetch run.
type Summary struct {
	RunID      uuid.UUID  `json:"run_id"`
	Source     string     `json:"source"`
	Timestamp  time.Time  `json:"timestamp"`
	OutputPath string     `json:"output_path"`
	Digest     string     `json:"digest,omitempty"`
	FromCache  bool       `json:"from_cache"`
	Stats      FetchStats `json:"stats"`

	// FirstYear and LastYear bound the discovery years of kept planets.
	FirstYear int `json:"first_year,omitempty"`
	LastYear  int `json:"last_year,omitempty"`

	// PerYear is sorted by year.
	PerYear []YearCount `json:"per_year,omitempty"`

	// PerMethod is sorted by descending count, then method.
	PerMethod []MethodCount `json:"per_method,omitempty"`

	Mass          Range `json:"mass"`
	SemimajorAxis Range `json:"semimajor_axis"`
}

// NewSummary computes the summary of a fetch run.
func NewSummary(run *FetchRun) *Summary {
	s := &Summary{
		RunID:      run.ID,
		Source:     run.Source,
		Timestamp:  run.Timestamp,
		OutputPath: run.OutputPath,
		Digest:     run.Digest,
		FromCache:  run.FromCache,
		Stats:      run.Stats,
	}
	if len(run.Planets) == 0 {
		return s
	}

	masses := make([]float64, len(run.Planets))
	axes := make([]float64, len(run.Planets))
	years := make(map[int]int)
	methods := make(map[string]int)
	for i, p := range run.Planets {
		masses[i] = p.Mass
		axes[i] = p.SemimajorAxis
		years[int(math.Floor(p.DiscoveryYear))]++
		methods[p.Method()]++
	}

	s.Mass = newRange(masses)
	s.SemimajorAxis = newRange(axes)

	for _, y := range slices.Sorted(maps.Keys(years)) {
		s.PerYear = append(s.PerYear, YearCount{Year: y, Count: years[y]})
	}
	s.FirstYear = s.PerYear[0].Year
	s.LastYear = s.PerYear[len(s.PerYear)-1].Year

	for m, n := range methods {
		s.PerMethod = append(s.PerMethod, MethodCount{Method: m, Count: n})
	}
	slices.SortFunc(s.PerMethod, func(a, b MethodCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})

	return s
}

// newRange sorts values in place.
func newRange(values []float64) Range {
	slices.Sort(values)
	return Range{
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
	}
}
