package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"audiorev/internal/ports"
)

// audioExt is the extension the path-manifest writer indexes. Other files
// in a dataset directory (transcripts, manifests) are ignored.
const audioExt = ".wav"

// Repository implements ports.DatasetRepository on the local filesystem
type Repository struct{}

var _ ports.DatasetRepository = (*Repository)(nil)

// NewRepository creates a new filesystem-backed dataset repository
func NewRepository() *Repository {
	return &Repository{}
}

// Discover returns every directory under root, nested included, that
// contains a path manifest, in lexicographic path order.
func (r *Repository) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root %s is not a directory", root)
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fileExists(filepath.Join(path, PathsFilename)) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk dataset root: %w", err)
	}

	sort.Strings(dirs)
	return dirs, nil
}

// ListSubdirs returns the immediate subdirectories of root in
// lexicographic order.
func (r *Repository) ListSubdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset root: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}
	return dirs, nil
}

// HasPathManifest reports whether dir carries a path manifest
func (r *Repository) HasPathManifest(dir string) bool {
	return fileExists(filepath.Join(dir, PathsFilename))
}

// HasScoreManifest reports whether dir carries a score manifest
func (r *Repository) HasScoreManifest(dir string) bool {
	return fileExists(filepath.Join(dir, ScoresFilename))
}

// WritePathManifest enumerates audio files in dir and writes one manifest
// line per file, absolute paths with forward slashes. The manifest is
// written to a temp file and renamed so a failed write never leaves a
// partial manifest behind. Returns the number of entries written.
func (r *Repository) WritePathManifest(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), audioExt) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tmp, err := os.CreateTemp(dir, PathsFilename+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create path manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, name := range names {
		abs, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			tmp.Close()
			return 0, fmt.Errorf("failed to resolve %s: %w", name, err)
		}
		line, err := json.Marshal(pathLine{Path: filepath.ToSlash(abs)})
		if err != nil {
			tmp.Close()
			return 0, err
		}
		if _, err := tmp.Write(append(line, '\n')); err != nil {
			tmp.Close()
			return 0, fmt.Errorf("failed to write path manifest: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write path manifest: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, PathsFilename)); err != nil {
		return 0, fmt.Errorf("failed to replace path manifest: %w", err)
	}
	return len(names), nil
}
