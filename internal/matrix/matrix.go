// Package matrix defines the benchmark work matrix: which pairs of revisions
// are diffed, for which binaries, and the file names their outputs get.
package matrix

import (
	"errors"
	"fmt"

	"github.com/dkoosis/patchbench/internal/listing"
)

// Known artifact names.
const (
	ChromeDLL      = "chrome.dll"
	ChromeChildDLL = "chrome_child.dll"
)

// File suffixes of the two outputs produced per item.
const (
	PatchSuffix      = ".zuc"
	CompressedSuffix = ".7z"
)

// ErrInvalidItem is returned by Validate for a malformed work item.
var ErrInvalidItem = errors.New("invalid work item")

var knownArtifacts = map[string]bool{
	ChromeDLL:      true,
	ChromeChildDLL: true,
}

// WorkItem is one unit of benchmark work: diff Artifact between the builds
// of revision Old and revision New.
type WorkItem struct {
	Old      int    `yaml:"old" json:"old"`
	New      int    `yaml:"new" json:"new"`
	Artifact string `yaml:"file" json:"file"`
}

func (w WorkItem) String() string {
	return fmt.Sprintf("%d→%d %s", w.Old, w.New, w.Artifact)
}

// PatchName is the file name of the uncompressed patch for w on platform p.
func (w WorkItem) PatchName(p listing.Platform) string {
	return fmt.Sprintf("%s_%d_%d_%s%s", p, w.Old, w.New, w.Artifact, PatchSuffix)
}

// CompressedName is the file name of the compressed patch. Its presence in
// the output directory marks w as complete.
func (w WorkItem) CompressedName(p listing.Platform) string {
	return w.PatchName(p) + CompressedSuffix
}

// Validate checks the direction and artifact of w.
func (w WorkItem) Validate() error {
	if w.Old <= 0 || w.New <= 0 {
		return fmt.Errorf("%w: %s: revisions must be positive", ErrInvalidItem, w)
	}
	if w.Old >= w.New {
		return fmt.Errorf("%w: %s: old revision must precede new revision", ErrInvalidItem, w)
	}
	if !knownArtifacts[w.Artifact] {
		return fmt.Errorf("%w: %s: unknown artifact %q", ErrInvalidItem, w, w.Artifact)
	}
	return nil
}

// Validate checks every item and rejects duplicates, since two identical
// items would share one output file.
func Validate(items []WorkItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: empty matrix", ErrInvalidItem)
	}
	seen := make(map[WorkItem]int, len(items))
	for i, w := range items {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if j, dup := seen[w]; dup {
			return fmt.Errorf("%w: item %d duplicates item %d (%s)", ErrInvalidItem, i, j, w)
		}
		seen[w] = i
	}
	return nil
}

// history is the sequence of release revisions benchmarked by default.
var history = []int{445272, 454726, 464841, 475179, 488823, 499356, 508891, 526414}

// Default returns the standard matrix: every consecutive pair of historical
// revisions, for chrome.dll and then chrome_child.dll.
func Default() []WorkItem {
	items := make([]WorkItem, 0, 2*(len(history)-1))
	for i := 1; i < len(history); i++ {
		for _, artifact := range []string{ChromeDLL, ChromeChildDLL} {
			items = append(items, WorkItem{Old: history[i-1], New: history[i], Artifact: artifact})
		}
	}
	return items
}
