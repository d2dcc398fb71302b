package repository

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/leighmcculloch/codesync/internal/pathutil"
)

// Discover finds the repository enclosing start by walking up the directory
// tree, and opens it.
//
// When there is no repository at or above start, Discover returns an error
// wrapping ErrNotFound if required is set, and nil, nil otherwise. A
// repository that is found but cannot be opened ends the search with Open's
// error.
func Discover(start string, required bool, opts ...Option) (*Repository, error) {
	o := newOptions(opts)

	notFound := func() (*Repository, error) {
		o.log.Debug("no repository found", zap.String("start", start))
		if required {
			return nil, &Error{Op: "discover", Path: start, Kind: ErrNotFound}
		}
		return nil, nil
	}

	// Canonicalize once so that the root check below is a fixed point.
	current, err := o.paths.Canonical(start)
	if err != nil {
		return nil, &Error{Op: "discover", Path: start, Kind: ErrIO, Err: err}
	}
	if !o.paths.Exists(current) {
		return notFound()
	}

	for {
		candidate := pathutil.Join(current, MetadataDir)
		o.log.Debug("checking", zap.String("path", candidate))
		if o.paths.IsDir(candidate) {
			return open(current, false, o)
		}

		parent := filepath.Dir(current)
		if parent == current || !o.paths.Exists(parent) {
			return notFound()
		}
		current = parent
	}
}
