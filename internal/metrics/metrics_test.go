package metrics

import (
	"bytes"
	"testing"
)

func TestParse(t *testing.T) {
	input := []byte(`{
		"scope": "win64 · 2 items",
		"columns": ["compressed_bytes"],
		"rows": [
			{"name": "445272→454726 chrome.dll", "values": [1234], "old": 445272, "new": 454726, "file": "chrome.dll"},
			{"name": "445272→454726 chrome_child.dll", "values": [99], "outcome": "cached"}
		]
	}`)
	report, err := Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if report.Scope != "win64 · 2 items" {
		t.Errorf("scope = %q", report.Scope)
	}
	if len(report.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(report.Rows))
	}
	if report.Rows[0].Old != 445272 || report.Rows[0].Values[0] != 1234 {
		t.Errorf("row 0 = %+v", report.Rows[0])
	}
	if report.Rows[1].Outcome != "cached" {
		t.Errorf("row 1 outcome = %q", report.Rows[1].Outcome)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse([]byte{})
	if err == nil {
		t.Error("expected error for empty input")
	}
}

func TestEncode_IsReadableByParse(t *testing.T) {
	in := &Report{
		Scope:    "win64 · 1 item",
		Platform: "win64",
		Columns:  []string{ColumnCompressedBytes},
		Rows:     []Row{{Name: "a", Values: []float64{42}, Old: 1, New: 2, File: "chrome.dll"}},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if out.Platform != "win64" || out.Rows[0].Values[0] != 42 {
		t.Errorf("decoded %+v", out)
	}
}
