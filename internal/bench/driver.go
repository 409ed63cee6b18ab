package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/dkoosis/patchbench/internal/listing"
	"github.com/dkoosis/patchbench/internal/matrix"
	"github.com/dkoosis/patchbench/internal/store"
	"github.com/dkoosis/patchbench/internal/tool"
)

// ErrMissingInput is returned when a revision's artifact is absent from the
// input corpus.
var ErrMissingInput = errors.New("missing input artifact")

// State is the progress of a single work item.
type State int

// Work item states, in the only order they are visited.
const (
	Pending State = iota
	NeedsPatch
	NeedsCompression
	Done
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case NeedsPatch:
		return "needs-patch"
	case NeedsCompression:
		return "needs-compression"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome records how much work an item needed in this run.
type Outcome string

// Outcomes.
const (
	// OutcomeCached means the compressed patch already existed.
	OutcomeCached Outcome = "cached"
	// OutcomeCompressed means a patch from an earlier run was compressed.
	OutcomeCompressed Outcome = "compressed"
	// OutcomeGenerated means both the diff generator and the archiver ran.
	OutcomeGenerated Outcome = "generated"
)

// Result is the measurement for one work item.
type Result struct {
	Item           matrix.WorkItem
	Platform       listing.Platform
	PatchPath      string
	CompressedPath string
	Size           int64
	Outcome        Outcome
}

// Tools names the external executables.
type Tools struct {
	Patcher  string
	Archiver string
}

// Driver executes a work matrix.
type Driver struct {
	Platform listing.Platform
	// InputDir is the host path of the corpus; tools receive paths under it.
	InputDir string
	// Inputs is the corpus filesystem rooted at InputDir, used to check that
	// revision artifacts exist before diffing them.
	Inputs billy.Filesystem
	Store  store.CompletionStore
	Runner tool.Runner
	Tools  Tools
	Logger *slog.Logger
	// Verify applies each freshly generated patch and checks the result
	// matches the new artifact.
	Verify bool
}

// Run processes items in order and returns one Result per item. The first
// error stops the run and no results are returned; sizes of items finished
// before it have already been logged.
func (d *Driver) Run(ctx context.Context, items []matrix.WorkItem) ([]Result, error) {
	if _, err := listing.ListingDir(d.Platform); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	results := make([]Result, 0, len(items))
	for _, item := range items {
		res, err := d.Process(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", item, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Process drives a single item from Pending to Done.
func (d *Driver) Process(ctx context.Context, item matrix.WorkItem) (Result, error) {
	patchKey := item.PatchName(d.Platform)
	compressedKey := item.CompressedName(d.Platform)
	res := Result{
		Item:           item,
		Platform:       d.Platform,
		PatchPath:      d.Store.PathFor(patchKey),
		CompressedPath: d.Store.PathFor(compressedKey),
		Outcome:        OutcomeCached,
	}

	state := Pending
	for state != Done {
		switch state {
		case Pending:
			done, err := d.Store.Exists(compressedKey)
			if err != nil {
				return res, err
			}
			if done {
				state = Done
			} else {
				state = NeedsPatch
			}

		case NeedsPatch:
			have, err := d.Store.Exists(patchKey)
			if err != nil {
				return res, err
			}
			res.Outcome = OutcomeCompressed
			if !have {
				if err := d.generate(ctx, item, res.PatchPath); err != nil {
					return res, err
				}
				res.Outcome = OutcomeGenerated
				if d.Verify {
					if err := d.verify(ctx, item, patchKey); err != nil {
						// A rejected patch must not be reused by the next run.
						if rmErr := d.Store.Remove(patchKey); rmErr != nil {
							return res, errors.Join(err, rmErr)
						}
						return res, err
					}
				}
			}
			state = NeedsCompression

		case NeedsCompression:
			if err := d.run(ctx, tool.CompressCommand(d.Tools.Archiver, res.PatchPath, res.CompressedPath)); err != nil {
				return res, err
			}
			state = Done
		}
	}

	size, err := d.Store.Size(compressedKey)
	if err != nil {
		return res, err
	}
	res.Size = size
	d.logger().Info("file size",
		slog.String("item", item.String()),
		slog.String("file", compressedKey),
		slog.Int64("size", size),
		slog.String("outcome", string(res.Outcome)))
	return res, nil
}

func (d *Driver) generate(ctx context.Context, item matrix.WorkItem, patchPath string) error {
	oldRel, newRel, err := d.inputPaths(item)
	if err != nil {
		return err
	}
	return d.run(ctx, tool.PatchCommand(d.Tools.Patcher, d.hostPath(oldRel), d.hostPath(newRel), patchPath))
}

// inputPaths returns the corpus-relative old and new artifact paths of item
// and checks that both exist.
func (d *Driver) inputPaths(item matrix.WorkItem) (oldRel, newRel string, err error) {
	oldRel, newRel, err = ArtifactPaths(d.Platform, item)
	if err != nil {
		return "", "", fmt.Errorf("configuration: %w", err)
	}
	if d.Inputs == nil {
		return oldRel, newRel, nil
	}
	for _, rel := range []string{oldRel, newRel} {
		if _, err := d.Inputs.Stat(rel); err != nil {
			if os.IsNotExist(err) {
				return "", "", fmt.Errorf("%w: %s", ErrMissingInput, d.hostPath(rel))
			}
			return "", "", fmt.Errorf("stat input %s: %w", d.hostPath(rel), err)
		}
	}
	return oldRel, newRel, nil
}

func (d *Driver) hostPath(rel string) string {
	return filepath.Join(d.InputDir, filepath.FromSlash(rel))
}

func (d *Driver) run(ctx context.Context, cmd tool.Command) error {
	d.logger().Debug("running", slog.String("command", cmd.String()))
	return d.Runner.Run(ctx, cmd)
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
