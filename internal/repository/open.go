package repository

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/leighmcculloch/codesync/internal/config"
	"github.com/leighmcculloch/codesync/internal/pathutil"
)

// Open opens the repository whose work tree is path.
//
// Unless force is set the metadata directory and its config file must exist
// and the config must not declare an unsupported format version. With force
// those checks are skipped and an existing config file is still loaded, which
// is how Bootstrap gets hold of a repository that does not exist yet.
func Open(path string, force bool, opts ...Option) (*Repository, error) {
	return open(path, force, newOptions(opts))
}

func open(path string, force bool, o options) (repo *Repository, err error) {
	workTree, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Kind: ErrIO, Err: err}
	}

	r := &Repository{
		workTree:     workTree,
		metadataRoot: pathutil.Join(workTree, MetadataDir),
		fs:           o.paths,
		log:          o.log,
	}
	defer func() {
		if err != nil {
			r.Close()
		}
	}()

	if !force && !r.fs.IsDir(r.metadataRoot) {
		return nil, &Error{Op: "open", Path: workTree, Kind: ErrNotARepository}
	}

	r.config = config.New()

	cfgPath, resolveErr := r.File(false, configFile)
	switch {
	case resolveErr == nil && r.fs.Exists(cfgPath):
		r.log.Debug("reading config", zap.String("path", cfgPath))
		if err := r.config.ReadFile(r.fs.Fs(), cfgPath); err != nil {
			r.log.Warn("unreadable config", zap.String("path", cfgPath), zap.String("reason", r.config.ErrorText()))
			return nil, &Error{Op: "open", Path: cfgPath, Kind: ErrConfigParse, Err: err}
		}
	case !force:
		return nil, &Error{Op: "open", Path: r.Path(configFile), Kind: ErrMissingConfig}
	}

	if !force {
		version, ok, err := r.config.LookupInt(KeyFormatVersion)
		if err != nil {
			return nil, &Error{Op: "open", Path: cfgPath, Kind: ErrConfigParse, Err: err}
		}
		if ok && version != FormatVersion {
			return nil, &Error{Op: "open", Path: cfgPath, Kind: ErrUnsupportedFormatVersion, Version: version}
		}
	}

	r.log.Debug("opened repository", zap.String("work_tree", r.workTree), zap.Bool("force", force))
	return r, nil
}
