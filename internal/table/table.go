package table

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/exotimeline/internal/model"
)

// Header is the column description written as the first line of a table.
const Header = "mass (Mjup), semi-major axis (au), discovery year"

const (
	commentPrefix = "#"
	rowFormat     = "%.4e %.4e %.4e\n"
	columns       = 3
	filePerm      = 0o644
)

// Write writes the header and one row per record to w.
func Write(w io.Writer, records []model.PlanetRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s %s\n", commentPrefix, Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(bw, rowFormat, r.Mass, r.SemimajorAxis, r.DiscoveryYear); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return bw.Flush()
}

// WriteFile writes the table to path, replacing any existing file.
func WriteFile(path string, records []model.PlanetRecord) error {
	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write table %s: %w", path, err)
	}
	return nil
}

// Read parses a table. Blank lines and lines starting with '#' are skipped.
func Read(r io.Reader) ([]model.PlanetRecord, error) {
	var records []model.PlanetRecord

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		record, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return records, nil
}

// ReadFile parses the table at path. A table without rows is an error.
func ReadFile(path string) ([]model.PlanetRecord, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}
	return records, nil
}

func parseRow(line string) (model.PlanetRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != columns {
		return model.PlanetRecord{}, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedRow, columns, len(fields))
	}

	var values [columns]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return model.PlanetRecord{}, fmt.Errorf("%w: column %d: %w", ErrMalformedRow, i+1, err)
		}
		values[i] = v
	}

	return model.PlanetRecord{
		Mass:          values[0],
		SemimajorAxis: values[1],
		DiscoveryYear: values[2],
	}, nil
}
