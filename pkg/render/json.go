package render

import (
	"bytes"

	"github.com/dkoosis/patchbench/internal/metrics"
)

// JSON renders the summary as a metrics report.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// Report converts s to a metrics report.
func (j *JSON) Report(s Summary) *metrics.Report {
	r := &metrics.Report{
		Scope:    scope(s),
		Platform: s.Platform,
		Columns:  []string{metrics.ColumnCompressedBytes},
		Rows:     make([]metrics.Row, 0, len(s.Rows)),
	}
	for _, row := range s.Rows {
		r.Rows = append(r.Rows, metrics.Row{
			Name:    row.Name(),
			Values:  []float64{float64(row.Size)},
			Old:     row.Old,
			New:     row.New,
			File:    row.Artifact,
			Outcome: string(row.Outcome),
		})
	}
	return r
}

// Render formats the summary as indented JSON.
func (j *JSON) Render(s Summary) string {
	var buf bytes.Buffer
	if err := metrics.Encode(&buf, j.Report(s)); err != nil {
		return ""
	}
	return buf.String()
}
