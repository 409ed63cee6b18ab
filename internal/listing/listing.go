// Package listing maps platform identifiers and revisions to the directory
// names used by the build archive listing in the input corpus.
package listing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Platform identifies a build output naming convention.
type Platform string

// Known platforms.
const (
	Win   Platform = "win"
	Win64 Platform = "win64"
)

// ErrUnknownPlatform is returned for a platform with no listing directory.
var ErrUnknownPlatform = errors.New("unknown platform")

// segmentSep is the escaped "/" used by the archive listing. It is part of
// the directory name on disk, not a path separator.
const segmentSep = "%2F"

// buildRoot is the last segment of every build artifact path.
const buildRoot = "chrome-win32"

var listingDirs = map[Platform]string{
	Win:   "Win",
	Win64: "Win_x64",
}

// Parse validates s as a known platform identifier.
func Parse(s string) (Platform, error) {
	p := Platform(strings.TrimSpace(s))
	if _, ok := listingDirs[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// ListingDir returns the listing directory name for p.
func ListingDir(p Platform) (string, error) {
	dir, ok := listingDirs[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
	}
	return dir, nil
}

// BuildArtifactPath returns the corpus directory holding the build output
// of revision for platform p, e.g. "Win_x64%2F526414%2Fchrome-win32".
func BuildArtifactPath(p Platform, revision int) (string, error) {
	dir, err := ListingDir(p)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{dir, strconv.Itoa(revision), buildRoot}, segmentSep), nil
}

// Platforms returns the known platforms in a stable order.
func Platforms() []Platform {
	return []Platform{Win, Win64}
}
