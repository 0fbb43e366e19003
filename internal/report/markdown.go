package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/exotimeline/internal/model"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSummary outputs the fetch summary.
func (w *MarkdownWriter) WriteSummary(s *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Exoplanet Catalogue Fetch")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + s.Source + "`"},
			{"Fetched", s.Timestamp.Format(timeLayout)},
			{"Run ID", "`" + s.RunID.String() + "`"},
			{"Output", "`" + s.OutputPath + "`"},
		},
	})
	md.PlainText("")

	md.H2("Entries")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Entries", "Count"},
		Rows: [][]string{
			{"Total", strconv.Itoa(s.Stats.Total)},
			{"Incomplete", strconv.Itoa(s.Stats.Incomplete)},
			{"Before 1990", strconv.Itoa(s.Stats.PreCutoff)},
			{"**Kept**", "**" + strconv.Itoa(s.Stats.Kept) + "**"},
		},
	})
	md.PlainText("")

	w.writeSummaryAlert(md, s)

	if s.Stats.Kept > 0 {
		w.writeRanges(md, s)
		w.writeMethods(md, s)
		w.writeYears(md, s)
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by exotimeline*")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummaryAlert(md *markdown.Markdown, s *model.Summary) {
	switch {
	case s.Stats.Kept == 0:
		md.Cautionf("No planet passed filtering; %d entries were read from the catalogue.", s.Stats.Total)
	case s.FromCache:
		md.Note("The catalogue was served from the local cache.")
	default:
		md.Tip(fmt.Sprintf("%d planets discovered between %d and %d are ready to animate.",
			s.Stats.Kept, s.FirstYear, s.LastYear))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeRanges(md *markdown.Markdown, s *model.Summary) {
	md.H2("Kept Planets")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Column", "Min", "Median", "Max"},
		Rows: [][]string{
			rangeRow("Mass (Mjup)", s.Mass),
			rangeRow("Semi-major axis (au)", s.SemimajorAxis),
		},
	})
	md.PlainText("")
}

func rangeRow(name string, r model.Range) []string {
	return []string{
		name,
		strconv.FormatFloat(r.Min, 'g', 4, 64),
		strconv.FormatFloat(r.Median, 'g', 4, 64),
		strconv.FormatFloat(r.Max, 'g', 4, 64),
	}
}

func (w *MarkdownWriter) writeMethods(md *markdown.Markdown, s *model.Summary) {
	md.H2("Discovery Methods")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Discovery Methods"),
		piechart.WithShowData(true),
	)
	rows := make([][]string, len(s.PerMethod))
	for i, m := range s.PerMethod {
		label := methodTitle(m.Method)
		chart.LabelAndIntValue(label, uint64(m.Count))
		rows[i] = []string{label, strconv.Itoa(m.Count)}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Method", "Planets"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeYears(md *markdown.Markdown, s *model.Summary) {
	md.H2("Discoveries per Year")
	md.PlainText("")
	md.Details(fmt.Sprintf("%d to %d", s.FirstYear, s.LastYear), yearsText(s.PerYear))
	md.PlainText("")
}

// yearsText is a compact one-line form of the per-year counts.
func yearsText(years []model.YearCount) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprintf("%d: %d", y.Year, y.Count)
	}
	return strings.Join(parts, ", ")
}

// WriteDiff outputs the planets added and removed between two runs.
func (w *MarkdownWriter) WriteDiff(d *model.CatalogueDiff) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Catalogue Comparison")
	md.PlainText("")

	digest := "unchanged"
	if d.DigestChanged {
		digest = "changed"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current"},
		Rows: [][]string{
			{"Run", "`" + d.From.ID.String() + "`", "`" + d.To.ID.String() + "`"},
			{"Date", d.From.Timestamp.Format(timeLayout), d.To.Timestamp.Format(timeLayout)},
			{"Planets", strconv.Itoa(d.From.Kept), strconv.Itoa(d.To.Kept)},
		},
	})
	md.PlainText("")

	switch {
	case !d.HasChanges() && !d.DigestChanged:
		md.Note("The catalogue has not changed.")
	case !d.HasChanges():
		md.Importantf("The catalogue changed (%s) but the kept planets are the same.", digest)
	default:
		md.Warningf("%d planet(s) added, %d removed.", len(d.Added), len(d.Removed))
	}
	md.PlainText("")

	if len(d.Added) > 0 {
		md.H2(fmt.Sprintf("Added (%d)", len(d.Added)))
		md.PlainText("")
		md.BulletList(diffItems(d.Added)...)
		md.PlainText("")
	}
	if len(d.Removed) > 0 {
		md.H2(fmt.Sprintf("Removed (%d)", len(d.Removed)))
		md.PlainText("")
		md.BulletList(diffItems(d.Removed)...)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

func diffItems(planets []model.Planet) []string {
	items := make([]string, len(planets))
	for i, p := range planets {
		items[i] = fmt.Sprintf("%s (%.0f, %s)", planetLabel(p), p.DiscoveryYear, methodTitle(p.Method()))
	}
	return items
}
