package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/patchbench/internal/bench"
	"github.com/dkoosis/patchbench/internal/metrics"
)

func sampleSummary() Summary {
	return Summary{
		Platform:  "win64",
		OutputDir: "out/run1",
		Rows: []Row{
			{Old: 445272, New: 454726, Artifact: "chrome.dll", Size: 1234567, Outcome: bench.OutcomeGenerated},
			{Old: 445272, New: 454726, Artifact: "chrome_child.dll", Size: 89, Outcome: bench.OutcomeCached},
			{Old: 454726, New: 464841, Artifact: "chrome.dll", Size: 4321, Outcome: bench.OutcomeCompressed},
		},
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
		-4200:   "-4,200",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatBytes(in), "formatBytes(%d)", in)
	}
}

func TestScope(t *testing.T) {
	assert.Equal(t, "win64 · 3 items · 1 generated · 1 compressed · 1 cached", scope(sampleSummary()))
	assert.Equal(t, "win · 0 items", scope(Summary{Platform: "win"}))
}

func TestPlain_AlignsColumns(t *testing.T) {
	out := NewPlain().Render(sampleSummary())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "SCOPE: win64 · 3 items · 1 generated · 1 compressed · 1 cached", lines[0])
	assert.Equal(t, "OUTDIR: out/run1", lines[1])
	assert.Equal(t, "445272→454726 chrome.dll        1,234,567  generated", lines[2])
	assert.Equal(t, "445272→454726 chrome_child.dll         89  cached", lines[3])
	assert.Equal(t, "454726→464841 chrome.dll            4,321  compressed", lines[4])
	assert.NotContains(t, out, "\033[")
}

func TestTerminal_MonoTheme(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render(sampleSummary())

	assert.Contains(t, out, "Patch sizes")
	assert.Contains(t, out, "+ 445272→454726 chrome.dll")
	assert.Contains(t, out, "* 445272→454726 chrome_child.dll")
	assert.Contains(t, out, "- 454726→464841 chrome.dll")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "out/run1")
}

func TestJSON_ProducesMetricsReport(t *testing.T) {
	out := NewJSON().Render(sampleSummary())

	report, err := metrics.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []string{metrics.ColumnCompressedBytes}, report.Columns)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "445272→454726 chrome.dll", report.Rows[0].Name)
	assert.Equal(t, []float64{1234567}, report.Rows[0].Values)
	assert.Equal(t, "chrome_child.dll", report.Rows[1].File)
	assert.Equal(t, string(bench.OutcomeCompressed), report.Rows[2].Outcome)
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, "mono", ThemeFor(true).Name)
	assert.Equal(t, "default", ThemeFor(false).Name)
}
