package source

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Entry is one immediate child of a listed directory.
type Entry struct {
	Name  string
	IsDir bool
}

// Source is the read-only view of a Claude data directory.
// Paths are slash-separated and relative to the source root.
type Source interface {
	List(ctx context.Context, dir string) ([]Entry, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirSource serves a Source from the local filesystem.
type DirSource struct {
	Root string
}

// NewDirSource returns a Source rooted at claudeDir.
func NewDirSource(claudeDir string) *DirSource {
	return &DirSource{Root: claudeDir}
}

func (d *DirSource) resolve(name string) string {
	return filepath.Join(d.Root, filepath.FromSlash(path.Clean("/"+name)))
}

// List returns the immediate children of dir.
func (d *DirSource) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	des, err := os.ReadDir(d.resolve(dir))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	return entries, nil
}

// Open opens a file for reading.
func (d *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(d.resolve(name))
}
