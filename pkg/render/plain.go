package render

import (
	"strings"
)

// Plain renders the summary as aligned text with no ANSI codes, for pipes
// and log files.
type Plain struct{}

// NewPlain creates a plain text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render formats the summary.
func (p *Plain) Render(s Summary) string {
	var sb strings.Builder
	sb.WriteString("SCOPE: ")
	sb.WriteString(scope(s))
	sb.WriteString("\n")
	if s.OutputDir != "" {
		sb.WriteString("OUTDIR: " + s.OutputDir + "\n")
	}

	nameW, sizeW := columnWidths(s.Rows)
	for _, r := range s.Rows {
		sb.WriteString(padRight(r.Name(), nameW))
		sb.WriteString("  ")
		sb.WriteString(padLeft(formatBytes(r.Size), sizeW))
		sb.WriteString("  ")
		sb.WriteString(string(r.Outcome))
		sb.WriteString("\n")
	}
	return sb.String()
}
