package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/exotimeline/internal/model"
)

// createTestRun creates a run with three kept planets.
func createTestRun() *model.FetchRun {
	run := model.NewFetchRun("https://example.com/systems.xml.gz", "exoplanets.txt")
	run.Timestamp = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	run.Digest = "d1"
	run.Planets = []model.Planet{
		{Name: "51 Peg b", Mass: 0.47, SemimajorAxis: 0.052, DiscoveryYear: 1995, DiscoveryMethod: "RV"},
		{Name: "Kepler-22 b", Mass: 0.1, SemimajorAxis: 0.85, DiscoveryYear: 2011, DiscoveryMethod: "transit"},
		{Name: "Kepler-10 b", Mass: 0.01, SemimajorAxis: 0.017, DiscoveryYear: 2011, DiscoveryMethod: "transit"},
	}
	run.Stats = model.FetchStats{Total: 5, Incomplete: 1, PreCutoff: 1, Kept: 3}
	return run
}

func createTestDiff() *model.CatalogueDiff {
	from := createTestRun()
	to := createTestRun()
	to.Timestamp = from.Timestamp.Add(24 * time.Hour)
	to.Digest = "d2"
	to.Planets = append(to.Planets[1:], model.Planet{
		Name: "TOI-700 d", Mass: 0.006, SemimajorAxis: 0.16, DiscoveryYear: 2020, DiscoveryMethod: "transit",
	})
	return model.NewCatalogueDiff(from, to)
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		if _, err := w.WriteSummary(model.NewSummary(createTestRun())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"EXOPLANET CATALOGUE FETCH",
			"https://example.com/systems.xml.gz",
			"Kept:         3",
			"1995 - 2011",
			"Transit",
			"RV",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
		if strings.Contains(output, "DISCOVERIES PER YEAR") {
			t.Error("per-year section should only appear in verbose mode")
		}
	})

	t.Run("verbose adds per-year counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))
		if _, err := w.WriteSummary(model.NewSummary(createTestRun())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "2011      2") {
			t.Errorf("expected per-year line in output:\n%s", buf.String())
		}
	})

	t.Run("empty run skips planet sections", func(t *testing.T) {
		t.Parallel()

		run := createTestRun()
		run.Planets = nil
		run.Stats.Kept = 0

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteSummary(model.NewSummary(run)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "DISCOVERY METHODS") {
			t.Error("expected no method section for an empty run")
		}
	})

	t.Run("writes diff", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).WriteDiff(createTestDiff())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		output := buf.String()
		for _, want := range []string{"ADDED (1)", "[+] TOI-700 d (2020)", "REMOVED (1)", "[-] 51 Peg b (1995)", "Catalogue: changed"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
	})

	t.Run("diff without changes", func(t *testing.T) {
		t.Parallel()

		run := createTestRun()
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteDiff(model.NewCatalogueDiff(run, run)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No planets added or removed.") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("summary has tables and pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteSummary(model.NewSummary(createTestRun())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Exoplanet Catalogue Fetch",
			"## Discovery Methods",
			"```mermaid",
			"Transit",
			"| Method",
			"ready to animate",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
	})

	t.Run("empty run raises caution", func(t *testing.T) {
		t.Parallel()

		run := createTestRun()
		run.Planets = nil
		run.Stats.Kept = 0

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteSummary(model.NewSummary(run)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No planet passed filtering") {
			t.Errorf("expected caution alert:\n%s", buf.String())
		}
		if strings.Contains(buf.String(), "mermaid") {
			t.Error("expected no chart for an empty run")
		}
	})

	t.Run("diff lists added and removed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteDiff(createTestDiff()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"## Added (1)", "TOI-700 d", "## Removed (1)", "51 Peg b", "1 planet(s) added, 1 removed."} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteSummary(model.NewSummary(createTestRun())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got model.Summary
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Stats.Kept != 3 || got.FirstYear != 1995 || got.LastYear != 2011 {
			t.Errorf("unexpected summary %+v", got)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected compact output on one line")
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).WriteDiff(createTestDiff()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"source\"") {
			t.Errorf("expected indented output:\n%s", buf.String())
		}
	})

	t.Run("version wrapper", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithVersion("v1.2.3")).WriteDiff(createTestDiff()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got JSONReport
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Version != "v1.2.3" || got.Diff == nil || got.Summary != nil {
			t.Errorf("unexpected report %+v", got)
		}
		if len(got.Diff.Added) != 1 || got.Diff.Added[0].Name != "TOI-700 d" {
			t.Errorf("unexpected diff %+v", got.Diff)
		}
	})
}

// failingWriter always fails.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		m := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

		n, err := m.WriteSummary(model.NewSummary(createTestRun()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected output in both writers")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		m := NewMultiWriter(NewSimpleWriter(failingWriter{}), NewSimpleWriter(&after))

		if _, err := m.WriteDiff(createTestDiff()); err == nil {
			t.Error("expected error")
		}
		if after.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

func TestMethodTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"transit", "Transit"},
		{"RV", "RV"},
		{"microlensing", "Microlensing"},
		{"unknown", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := methodTitle(tt.in); got != tt.want {
				t.Errorf("methodTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
