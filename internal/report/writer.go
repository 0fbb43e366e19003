package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/exotimeline/internal/model"
)

// Writer outputs fetch reports.
type Writer interface {
	// WriteSummary outputs the summary of a single fetch run.
	// Returns the number of bytes written and any error encountered.
	WriteSummary(s *model.Summary) (int, error)

	// WriteDiff outputs the planets added and removed between two runs.
	WriteDiff(d *model.CatalogueDiff) (int, error)
}

// MultiWriter writes to several Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteSummary writes s to every writer and stops on the first error.
func (m *MultiWriter) WriteSummary(s *model.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(s)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteDiff writes d to every writer and stops on the first error.
func (m *MultiWriter) WriteDiff(d *model.CatalogueDiff) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteDiff(d)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// methodTitle turns catalogue method names such as "transit" or
// "RV" into display labels. All-caps abbreviations are left alone.
func methodTitle(method string) string {
	if method == strings.ToUpper(method) {
		return method
	}
	return cases.Title(language.English).String(method)
}

// planetLabel is the display name of a planet.
func planetLabel(p model.Planet) string {
	if p.Name != "" {
		return p.Name
	}
	return "(unnamed " + p.Key() + ")"
}

const timeLayout = "2006-01-02 15:04:05 MST"
