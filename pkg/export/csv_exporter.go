package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is a table of rows keyed by header name.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// NewDataset starts an empty dataset with the given column order.
func NewDataset(headers ...string) *Dataset {
	return &Dataset{Headers: headers, Rows: make([]map[string]string, 0)}
}

// Append adds one row. Columns missing from values render as empty cells.
func (d *Dataset) Append(values map[string]string) {
	d.Rows = append(d.Rows, values)
}

// Empty reports whether the dataset carries no rows.
func (d Dataset) Empty() bool {
	return len(d.Rows) == 0
}

func (d Dataset) record(row map[string]string) []string {
	out := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		out[i] = row[header]
	}
	return out
}

// CSVExporter writes a Dataset as a header line followed by one line per row.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the dataset. A dataset without headers is rejected.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	records := make([][]string, 0, len(data.Rows)+1)
	records = append(records, data.Headers)
	for _, row := range data.Rows {
		records = append(records, data.record(row))
	}

	var buf bytes.Buffer
	if err := csv.NewWriter(&buf).WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
