// Package store records which benchmark outputs already exist. The output
// directory itself is the cache: a file being present means the step that
// writes it has completed in some earlier run.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// CompletionStore answers whether the output named key exists and where it
// lives. Keys are flat file names.
type CompletionStore interface {
	// Exists reports whether key is present.
	Exists(key string) (bool, error)
	// PathFor returns the path external tools should read or write for key.
	PathFor(key string) string
	// Size returns the size of key in bytes.
	Size(key string) (int64, error)
	// Open opens key for reading.
	Open(key string) (io.ReadCloser, error)
	// Remove deletes key. A missing key is not an error.
	Remove(key string) error
}

// FS is a CompletionStore backed by a billy filesystem.
type FS struct {
	fs   billy.Filesystem
	root string
}

// NewOS returns a store rooted at dir on the host filesystem, creating dir
// if it does not exist.
func NewOS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %q: %w", abs, err)
	}
	return &FS{fs: osfs.New(abs), root: abs}, nil
}

// OpenOS returns a store rooted at dir without creating it. A missing
// directory reads as an empty store.
func OpenOS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %q: %w", dir, err)
	}
	return &FS{fs: osfs.New(abs), root: abs}, nil
}

// NewMemory returns an empty in-memory store. Paths returned by PathFor are
// the keys themselves and are only meaningful to Filesystem().
func NewMemory() *FS {
	return &FS{fs: memfs.New()}
}

// Filesystem exposes the backing filesystem.
//
//nolint:ireturn // billy.Filesystem is the upstream interface.
func (s *FS) Filesystem() billy.Filesystem {
	return s.fs
}

// Root returns the host directory of the store, or "" for memory stores.
func (s *FS) Root() string {
	return s.root
}

// Exists implements CompletionStore.
func (s *FS) Exists(key string) (bool, error) {
	_, err := s.fs.Stat(key)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("store: stat %q: %w", key, err)
	}
}

// PathFor implements CompletionStore.
func (s *FS) PathFor(key string) string {
	if s.root == "" {
		return key
	}
	return filepath.Join(s.root, key)
}

// Size implements CompletionStore.
func (s *FS) Size(key string) (int64, error) {
	fi, err := s.fs.Stat(key)
	if err != nil {
		return 0, fmt.Errorf("store: stat %q: %w", key, err)
	}
	return fi.Size(), nil
}

// Open implements CompletionStore.
func (s *FS) Open(key string) (io.ReadCloser, error) {
	f, err := s.fs.Open(key)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", key, err)
	}
	return f, nil
}

// Remove implements CompletionStore.
func (s *FS) Remove(key string) error {
	if err := s.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: remove %q: %w", key, err)
	}
	return nil
}
