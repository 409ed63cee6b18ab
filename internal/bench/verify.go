package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dkoosis/patchbench/internal/matrix"
	"github.com/dkoosis/patchbench/internal/tool"
)

// ErrVerifyMismatch is returned when applying a patch does not reproduce
// the new artifact.
var ErrVerifyMismatch = errors.New("applied patch does not match new artifact")

// AppliedSuffix is appended to a patch name for the file reconstructed
// during verification.
const AppliedSuffix = ".applied"

const compareChunk = 64 * 1024

// verify applies the patch stored under patchKey to the old artifact and
// compares the output with the new artifact. The reconstructed file is
// removed once compared.
func (d *Driver) verify(ctx context.Context, item matrix.WorkItem, patchKey string) (err error) {
	oldRel, newRel, err := d.inputPaths(item)
	if err != nil {
		return err
	}
	appliedKey := patchKey + AppliedSuffix
	defer func() {
		if rmErr := d.Store.Remove(appliedKey); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
	}()
	cmd := tool.ApplyCommand(d.Tools.Patcher, d.hostPath(oldRel), d.Store.PathFor(patchKey), d.Store.PathFor(appliedKey))
	if err := d.run(ctx, cmd); err != nil {
		return err
	}

	same, err := d.compareApplied(appliedKey, newRel)
	if err != nil {
		return fmt.Errorf("verify %s: %w", appliedKey, err)
	}
	if !same {
		return fmt.Errorf("%w: %s", ErrVerifyMismatch, appliedKey)
	}
	d.logger().Debug("verified", "file", appliedKey)
	return nil
}

func (d *Driver) compareApplied(appliedKey, newRel string) (bool, error) {
	got, err := d.Store.Open(appliedKey)
	if err != nil {
		return false, err
	}
	defer got.Close()
	want, err := d.openInput(newRel)
	if err != nil {
		return false, err
	}
	defer want.Close()
	return sameContent(got, want)
}

func (d *Driver) openInput(rel string) (io.ReadCloser, error) {
	if d.Inputs != nil {
		f, err := d.Inputs.Open(rel)
		if err != nil {
			return nil, fmt.Errorf("open input %s: %w", d.hostPath(rel), err)
		}
		return f, nil
	}
	f, err := os.Open(d.hostPath(rel))
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// sameContent reports whether a and b yield identical bytes.
func sameContent(a, b io.Reader) (bool, error) {
	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, errA := io.ReadFull(a, bufA)
		nb, errB := io.ReadFull(b, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		endA, err := chunkEnd(errA)
		if err != nil {
			return false, err
		}
		endB, err := chunkEnd(errB)
		if err != nil {
			return false, err
		}
		if endA || endB {
			return endA == endB, nil
		}
	}
}

func chunkEnd(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true, nil
	default:
		return false, err
	}
}
