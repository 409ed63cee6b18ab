package matrix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/patchbench/internal/listing"
)

func TestDefault_MatchesHistoricalMatrix(t *testing.T) {
	want := []WorkItem{
		{445272, 454726, ChromeDLL},
		{445272, 454726, ChromeChildDLL},
		{454726, 464841, ChromeDLL},
		{454726, 464841, ChromeChildDLL},
		{464841, 475179, ChromeDLL},
		{464841, 475179, ChromeChildDLL},
		{475179, 488823, ChromeDLL},
		{475179, 488823, ChromeChildDLL},
		{488823, 499356, ChromeDLL},
		{488823, 499356, ChromeChildDLL},
		{499356, 508891, ChromeDLL},
		{499356, 508891, ChromeChildDLL},
		{508891, 526414, ChromeDLL},
		{508891, 526414, ChromeChildDLL},
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Fatalf("Default() mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, Validate(Default()))
}

func TestDefault_ReturnsFreshSlice(t *testing.T) {
	a := Default()
	a[0].Artifact = "mutated"
	assert.Equal(t, ChromeDLL, Default()[0].Artifact)
}

func TestWorkItem_Names(t *testing.T) {
	w := WorkItem{Old: 445272, New: 454726, Artifact: ChromeDLL}
	assert.Equal(t, "win64_445272_454726_chrome.dll.zuc", w.PatchName(listing.Win64))
	assert.Equal(t, "win64_445272_454726_chrome.dll.zuc.7z", w.CompressedName(listing.Win64))
	assert.Equal(t, "win_445272_454726_chrome.dll.zuc", w.PatchName(listing.Win))
}

func TestWorkItem_NamesAreUniqueAcrossDefault(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range Default() {
		name := w.CompressedName(listing.Win64)
		assert.False(t, seen[name], "duplicate output name %s", name)
		seen[name] = true
	}
}

func TestWorkItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    WorkItem
		wantErr bool
	}{
		{"valid", WorkItem{1, 2, ChromeDLL}, false},
		{"same revision", WorkItem{2, 2, ChromeDLL}, true},
		{"backwards", WorkItem{3, 2, ChromeChildDLL}, true},
		{"zero revision", WorkItem{0, 2, ChromeDLL}, true},
		{"unknown artifact", WorkItem{1, 2, "setup.exe"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidItem)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_RejectsDuplicatesAndEmpty(t *testing.T) {
	w := WorkItem{1, 2, ChromeDLL}
	assert.ErrorIs(t, Validate([]WorkItem{w, w}), ErrInvalidItem)
	assert.ErrorIs(t, Validate(nil), ErrInvalidItem)
}
