// Package report writes fetch summaries and catalogue diffs.
//
// Three formats are available:
//   - SimpleWriter: plain text for the terminal
//   - MarkdownWriter: tables, a mermaid pie chart of discovery methods and
//     GitHub alerts, for sharing
//   - JSONWriter: machine readable output
//
// All writers implement Writer and can be combined with MultiWriter, for
// example to print a summary and save a Markdown copy in one call.
package report
