// Package pathutil provides the filesystem path helpers used to locate and
// lay out repositories. It knows nothing about repositories themselves.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotDir is returned when a directory operation is applied to a path that
// exists but is not a directory.
var ErrNotDir = errors.New("not a directory")

const dirMode = 0o755

// Resolver answers path questions against a filesystem.
type Resolver struct {
	fs afero.Fs
}

// New returns a Resolver backed by fs, or by the OS filesystem when fs is nil.
func New(fs afero.Fs) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Resolver{fs: fs}
}

// Fs returns the underlying filesystem.
func (r *Resolver) Fs() afero.Fs {
	return r.fs
}

// Exists reports whether path can be stat'ed, whatever its type.
func (r *Resolver) Exists(path string) bool {
	_, err := r.fs.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func (r *Resolver) IsDir(path string) bool {
	fi, err := r.fs.Stat(path)
	return err == nil && fi.IsDir()
}

// MkdirAll creates path and any missing parents. Directories created before a
// failure are left in place.
func (r *Resolver) MkdirAll(path string) error {
	if err := r.fs.MkdirAll(path, dirMode); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// IsEmpty reports whether the directory at path has no entries.
func (r *Resolver) IsEmpty(path string) (bool, error) {
	fi, err := r.fs.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to open directory %s: %w", path, err)
	}
	if !fi.IsDir() {
		return false, fmt.Errorf("failed to open directory %s: %w", path, ErrNotDir)
	}
	empty, err := afero.IsEmpty(r.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", path, err)
	}
	return empty, nil
}

// Canonical returns path as an absolute, cleaned path. On the OS filesystem
// symbolic links are resolved too, as long as the path exists.
func (r *Resolver) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path of %s: %w", path, err)
	}
	if _, ok := r.fs.(*afero.OsFs); !ok {
		return abs, nil
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Missing paths stay lexical; the caller decides what absence means.
		return abs, nil
	}
	return resolved, nil
}

// Join appends segment to base with exactly one separator between them. It is
// purely lexical: "." and ".." are kept as they are.
func Join(base, segment string) string {
	if base == "" {
		return segment
	}
	if strings.HasSuffix(base, string(os.PathSeparator)) {
		return base + segment
	}
	return base + string(os.PathSeparator) + segment
}
