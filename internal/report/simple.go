package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/exotimeline/internal/model"
)

// SimpleWriter outputs plain text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds the per-year breakdown to summaries.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteSummary outputs the fetch summary.
func (w *SimpleWriter) WriteSummary(s *model.Summary) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "EXOPLANET CATALOGUE FETCH")

	fmt.Fprintf(&sb, "Source:     %s\n", s.Source)
	fmt.Fprintf(&sb, "Fetched:    %s\n", s.Timestamp.Format(timeLayout))
	fmt.Fprintf(&sb, "Run ID:     %s\n", s.RunID)
	fmt.Fprintf(&sb, "Output:     %s\n", s.OutputPath)
	if s.FromCache {
		sb.WriteString("Catalogue:  served from local cache\n")
	}
	sb.WriteString("\n")

	writeSection(&sb, "ENTRIES")
	fmt.Fprintf(&sb, "  Total:        %d\n", s.Stats.Total)
	fmt.Fprintf(&sb, "  Incomplete:   %d\n", s.Stats.Incomplete)
	fmt.Fprintf(&sb, "  Before 1990:  %d\n", s.Stats.PreCutoff)
	fmt.Fprintf(&sb, "  Kept:         %d\n", s.Stats.Kept)
	sb.WriteString("\n")

	if s.Stats.Kept > 0 {
		writeSection(&sb, "KEPT PLANETS")
		fmt.Fprintf(&sb, "  Discovered:      %d - %d\n", s.FirstYear, s.LastYear)
		fmt.Fprintf(&sb, "  Mass (Mjup):     %s\n", formatRange(s.Mass))
		fmt.Fprintf(&sb, "  Semi-major (au): %s\n", formatRange(s.SemimajorAxis))
		sb.WriteString("\n")

		writeSection(&sb, "DISCOVERY METHODS")
		for _, m := range s.PerMethod {
			fmt.Fprintf(&sb, "  %-28s %6d\n", methodTitle(m.Method), m.Count)
		}
		sb.WriteString("\n")

		if w.verbose {
			writeSection(&sb, "DISCOVERIES PER YEAR")
			for _, y := range s.PerYear {
				fmt.Fprintf(&sb, "  %d  %5d\n", y.Year, y.Count)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteDiff outputs the planets added and removed between two runs.
func (w *SimpleWriter) WriteDiff(d *model.CatalogueDiff) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "CATALOGUE COMPARISON")

	fmt.Fprintf(&sb, "Source:   %s\n", d.Source)
	fmt.Fprintf(&sb, "Previous: %s  (%d planets)\n", d.From.Timestamp.Format(timeLayout), d.From.Kept)
	fmt.Fprintf(&sb, "Current:  %s  (%d planets)\n", d.To.Timestamp.Format(timeLayout), d.To.Kept)
	if d.DigestChanged {
		sb.WriteString("Catalogue: changed\n")
	} else {
		sb.WriteString("Catalogue: unchanged\n")
	}
	sb.WriteString("\n")

	if !d.HasChanges() {
		sb.WriteString("No planets added or removed.\n\n")
	}
	if len(d.Added) > 0 {
		writeSection(&sb, fmt.Sprintf("ADDED (%d)", len(d.Added)))
		for _, p := range d.Added {
			fmt.Fprintf(&sb, "  [+] %s (%.0f)\n", planetLabel(p), p.DiscoveryYear)
		}
		sb.WriteString("\n")
	}
	if len(d.Removed) > 0 {
		writeSection(&sb, fmt.Sprintf("REMOVED (%d)", len(d.Removed)))
		for _, p := range d.Removed {
			fmt.Fprintf(&sb, "  [-] %s (%.0f)\n", planetLabel(p), p.DiscoveryYear)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	pad := max((70-len(title))/2, 0)
	sb.WriteString(strings.Repeat(" ", pad) + title + "\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
}

func formatRange(r model.Range) string {
	return fmt.Sprintf("%.4g .. %.4g (median %.4g)", r.Min, r.Max, r.Median)
}
