package repository

import (
	"errors"

	"github.com/leighmcculloch/codesync/internal/pathutil"
)

// Path joins segments onto the metadata root. It never touches the
// filesystem.
func (r *Repository) Path(segments ...string) string {
	p := r.metadataRoot
	for _, s := range segments {
		p = pathutil.Join(p, s)
	}
	return p
}

// Dir resolves a directory under the metadata root. A missing directory is
// created when create is set, and reported as ErrNotFound otherwise.
func (r *Repository) Dir(create bool, segments ...string) (string, error) {
	p := r.Path(segments...)
	if r.fs.Exists(p) {
		if !r.fs.IsDir(p) {
			return "", &Error{Op: "resolve", Path: p, Kind: ErrNotADirectory}
		}
		return p, nil
	}
	if !create {
		return "", &Error{Op: "resolve", Path: p, Kind: ErrNotFound}
	}
	if err := r.fs.MkdirAll(p); err != nil {
		return "", &Error{Op: "resolve", Path: p, Kind: ErrIO, Err: err}
	}
	return p, nil
}

// File resolves a file under the metadata root. Every segment but the last
// names a directory, resolved as Dir does; the last one is the file name.
func (r *Repository) File(create bool, segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", &Error{Op: "resolve", Path: r.metadataRoot, Kind: ErrNotFound, Err: errors.New("no file name given")}
	}
	last := len(segments) - 1
	dir, err := r.Dir(create, segments[:last]...)
	if err != nil {
		return "", err
	}
	return pathutil.Join(dir, segments[last]), nil
}
