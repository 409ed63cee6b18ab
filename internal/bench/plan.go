package bench

import (
	"path"

	"github.com/dkoosis/patchbench/internal/listing"
	"github.com/dkoosis/patchbench/internal/matrix"
)

// Step is the planned starting point of one item.
type Step struct {
	Item   matrix.WorkItem
	OldRel string
	NewRel string
	// Next is the first state that requires work, or Done.
	Next State
}

// Plan reports, without running anything, where each item would resume.
func (d *Driver) Plan(items []matrix.WorkItem) ([]Step, error) {
	steps := make([]Step, 0, len(items))
	for _, item := range items {
		oldRel, newRel, err := ArtifactPaths(d.Platform, item)
		if err != nil {
			return steps, err
		}
		step := Step{Item: item, OldRel: oldRel, NewRel: newRel, Next: NeedsPatch}
		done, err := d.Store.Exists(item.CompressedName(d.Platform))
		if err != nil {
			return steps, err
		}
		if done {
			step.Next = Done
		} else {
			have, err := d.Store.Exists(item.PatchName(d.Platform))
			if err != nil {
				return steps, err
			}
			if have {
				step.Next = NeedsCompression
			}
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// ArtifactPaths returns the corpus-relative old and new artifact paths for
// item.
func ArtifactPaths(p listing.Platform, item matrix.WorkItem) (oldRel, newRel string, err error) {
	oldDir, err := listing.BuildArtifactPath(p, item.Old)
	if err != nil {
		return "", "", err
	}
	newDir, err := listing.BuildArtifactPath(p, item.New)
	if err != nil {
		return "", "", err
	}
	return path.Join(oldDir, item.Artifact), path.Join(newDir, item.Artifact), nil
}
