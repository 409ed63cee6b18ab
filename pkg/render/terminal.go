package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/patchbench/internal/bench"
)

// Terminal renders the summary as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the summary for terminal display.
func (t *Terminal) Render(s Summary) string {
	var sb strings.Builder
	sb.WriteString(t.theme.Bold.Render("Patch sizes"))
	sb.WriteString(" ")
	sb.WriteString(t.theme.Muted.Render(scope(s)))
	sb.WriteString("\n")

	nameW, sizeW := columnWidths(s.Rows)
	// Leave room for the indent, icon and outcome columns.
	if limit := t.width - sizeW - 18; limit > 10 && nameW > limit {
		nameW = limit
	}
	for _, r := range s.Rows {
		icon, style := t.outcomeIconStyle(r.Outcome)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(t.theme.Primary.Render(padRight(truncate(r.Name(), nameW), nameW)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Bold.Render(padLeft(formatBytes(r.Size), sizeW)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(string(r.Outcome)))
		sb.WriteString("\n")
	}

	if s.OutputDir != "" {
		sb.WriteString(t.theme.Muted.Render(t.theme.Icons.Bullet + " " + s.OutputDir))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) outcomeIconStyle(outcome bench.Outcome) (string, lipgloss.Style) {
	switch outcome {
	case bench.OutcomeGenerated:
		return t.theme.Icons.Pass, t.theme.Success
	case bench.OutcomeCompressed:
		return t.theme.Icons.WIP, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Muted
	}
}

func truncate(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
