// Package render formats the end-of-run benchmark summary.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/patchbench/internal/bench"
)

// Summary is the data rendered after a run.
type Summary struct {
	Platform  string
	OutputDir string
	Rows      []Row
}

// Row is one measured work item.
type Row struct {
	Old      int
	New      int
	Artifact string
	Size     int64
	Outcome  bench.Outcome
}

// Name labels the row as "old→new artifact".
func (r Row) Name() string {
	return fmt.Sprintf("%d→%d %s", r.Old, r.New, r.Artifact)
}

// Renderer converts a summary to formatted output.
type Renderer interface {
	Render(s Summary) string
}

// scope is the one-line description of a run.
func scope(s Summary) string {
	counts := map[bench.Outcome]int{}
	for _, r := range s.Rows {
		counts[r.Outcome]++
	}
	noun := "items"
	if len(s.Rows) == 1 {
		noun = "item"
	}
	parts := []string{fmt.Sprintf("%s · %d %s", s.Platform, len(s.Rows), noun)}
	for _, kind := range []bench.Outcome{bench.OutcomeGenerated, bench.OutcomeCompressed, bench.OutcomeCached} {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	return strings.Join(parts, " · ")
}

// formatBytes renders n with thousands separators.
func formatBytes(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// columnWidths returns the display widths of the name and size columns.
func columnWidths(rows []Row) (nameW, sizeW int) {
	for _, r := range rows {
		nameW = max(nameW, runewidth.StringWidth(r.Name()))
		sizeW = max(sizeW, runewidth.StringWidth(formatBytes(r.Size)))
	}
	return nameW, sizeW
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
