package repository

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/leighmcculloch/codesync/internal/pathutil"
)

const (
	descriptionText = "Unnamed repository; edit this file 'description' to name the repository.\n"
	headText        = "ref: refs/heads/master\n"
)

// skeleton lists the directories every new repository starts with.
var skeleton = [][]string{
	{"branches"},
	{"objects"},
	{"refs", "tags"},
	{"refs", "heads"},
}

// bootstrapState is how far Bootstrap got. States only move forward.
type bootstrapState string

const (
	stateStart           bootstrapState = "start"
	stateShellOpened     bootstrapState = "shell-opened"
	stateTreeValidated   bootstrapState = "tree-validated"
	stateSkeletonCreated bootstrapState = "skeleton-created"
	stateFilesWritten    bootstrapState = "files-written"
	stateDone            bootstrapState = "done"
)

// Bootstrap creates a new repository with path as its work tree. The work
// tree is created if missing. An existing metadata directory must be empty.
func Bootstrap(path string, opts ...Option) (repo *Repository, err error) {
	o := newOptions(opts)
	state := stateStart
	advance := func(next bootstrapState) {
		state = next
		o.log.Debug("bootstrap", zap.String("path", path), zap.String("state", string(state)))
	}
	defer func() {
		if err != nil {
			o.log.Debug("bootstrap failed", zap.String("path", path), zap.String("state", string(state)), zap.Error(err))
		}
	}()

	r, err := open(path, true, o)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			r.Close()
		}
	}()
	advance(stateShellOpened)

	if err = r.prepareWorkTree(); err != nil {
		return nil, err
	}
	advance(stateTreeValidated)

	for _, dir := range skeleton {
		if _, err = r.Dir(true, dir...); err != nil {
			return nil, err
		}
	}
	advance(stateSkeletonCreated)

	if err = r.writeFile(descriptionFile, func(w io.Writer) error {
		_, err := io.WriteString(w, descriptionText)
		return err
	}); err != nil {
		return nil, err
	}
	if err = r.writeFile(headFile, func(w io.Writer) error {
		_, err := io.WriteString(w, headText)
		return err
	}); err != nil {
		return nil, err
	}
	if err = r.writeFile(configFile, func(w io.Writer) error {
		return WriteDefaultConfig(r, w)
	}); err != nil {
		return nil, err
	}
	advance(stateFilesWritten)

	advance(stateDone)
	return r, nil
}

// prepareWorkTree checks an existing work tree can host a new repository, or
// creates a missing one.
func (r *Repository) prepareWorkTree() error {
	if !r.fs.Exists(r.workTree) {
		if err := r.fs.MkdirAll(r.workTree); err != nil {
			return &Error{Op: "bootstrap", Path: r.workTree, Kind: ErrIO, Err: err}
		}
		return nil
	}
	if !r.fs.IsDir(r.workTree) {
		return &Error{Op: "bootstrap", Path: r.workTree, Kind: ErrNotADirectory}
	}
	if !r.fs.Exists(r.metadataRoot) {
		return nil
	}
	empty, err := r.fs.IsEmpty(r.metadataRoot)
	if errors.Is(err, pathutil.ErrNotDir) {
		return &Error{Op: "bootstrap", Path: r.metadataRoot, Kind: ErrNotADirectory}
	}
	if err != nil {
		return &Error{Op: "bootstrap", Path: r.metadataRoot, Kind: ErrIO, Err: err}
	}
	if !empty {
		return &Error{Op: "bootstrap", Path: r.metadataRoot, Kind: ErrNotEmpty}
	}
	return nil
}

// writeFile creates or truncates the named file under the metadata root and
// fills it with write.
func (r *Repository) writeFile(name string, write func(io.Writer) error) (err error) {
	path, err := r.File(true, name)
	if err != nil {
		return err
	}
	f, err := r.fs.Fs().OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return &Error{Op: "bootstrap", Path: path, Kind: ErrIO, Err: fmt.Errorf("failed to open %s: %w", name, err)}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, &Error{Op: "bootstrap", Path: path, Kind: ErrIO, Err: cerr})
		}
	}()

	if err := write(f); err != nil {
		return &Error{Op: "bootstrap", Path: path, Kind: ErrIO, Err: fmt.Errorf("failed to write %s: %w", name, err)}
	}
	r.log.Debug("wrote file", zap.String("path", path))
	return nil
}
