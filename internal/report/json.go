package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/exotimeline/internal/model"
)

// JSONWriter outputs reports in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent       bool
	indentPrefix string
	indentString string

	// version, when set, wraps every report in a JSONReport.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion wraps reports together with the tool version.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps a summary or a diff with the version that produced it.
type JSONReport struct {
	Version string               `json:"version"`
	Summary *model.Summary       `json:"summary,omitempty"`
	Diff    *model.CatalogueDiff `json:"diff,omitempty"`
}

// WriteSummary outputs the summary as JSON.
func (w *JSONWriter) WriteSummary(s *model.Summary) (int, error) {
	if w.version != "" {
		return w.writeJSON(&JSONReport{Version: w.version, Summary: s})
	}
	return w.writeJSON(s)
}

// WriteDiff outputs the diff as JSON.
func (w *JSONWriter) WriteDiff(d *model.CatalogueDiff) (int, error) {
	if w.version != "" {
		return w.writeJSON(&JSONReport{Version: w.version, Diff: d})
	}
	return w.writeJSON(d)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output
	data = append(data, '\n')
	return w.output.Write(data)
}
