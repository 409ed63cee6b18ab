// Package metrics encodes benchmark results as a metrics report. The shape
// (scope, columns, named rows of values) is the generic metrics JSON format,
// so reports can be fed to other tools that render it.
package metrics

import (
	"encoding/json"
	"fmt"
	"io"
)

// Column names.
const (
	ColumnCompressedBytes = "compressed_bytes"
)

// Report represents a metrics report for one benchmark run.
type Report struct {
	Scope    string   `json:"scope"`
	Platform string   `json:"platform,omitempty"`
	Columns  []string `json:"columns"`
	Rows     []Row    `json:"rows"`
}

// Row is a single named row of metric values.
type Row struct {
	Name    string    `json:"name"`
	Values  []float64 `json:"values"`
	N       int       `json:"n,omitempty"`
	Old     int       `json:"old,omitempty"`
	New     int       `json:"new,omitempty"`
	File    string    `json:"file,omitempty"`
	Outcome string    `json:"outcome,omitempty"`
}

// Parse decodes metrics JSON into a Report.
func Parse(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Encode writes r as indented JSON.
func Encode(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	return nil
}
