// Package repository discovers, opens and bootstraps codesync repositories.
//
// A repository is a work tree containing the hidden metadata directory
// .codesync. Discover walks upward from a path to find one, Open validates
// one at a known root and Bootstrap creates a new one.
package repository

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/leighmcculloch/codesync/internal/config"
	"github.com/leighmcculloch/codesync/internal/pathutil"
)

const (
	// MetadataDir is the name of the metadata directory inside a work tree.
	MetadataDir = ".codesync"

	// FormatVersion is the only repository format version understood.
	FormatVersion = 0
)

// Files and directories under the metadata directory.
const (
	configFile      = "config"
	descriptionFile = "description"
	headFile        = "HEAD"
)

// Config keys written at bootstrap.
const (
	coreSection      = "core"
	KeyFormatVersion = coreSection + ".repository_format_version"
	KeyFileMode      = coreSection + ".filemode"
	KeyBare          = coreSection + ".bare"
)

// Repository is an opened repository. It owns its configuration store; call
// Close once done with it.
type Repository struct {
	workTree     string
	metadataRoot string
	config       *config.Store

	fs  *pathutil.Resolver
	log *zap.Logger
}

// Option configures Open, Discover and Bootstrap.
type Option func(*options)

type options struct {
	fs    afero.Fs
	log   *zap.Logger
	paths *pathutil.Resolver
}

// WithFs makes the repository use fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger that operations report their steps to.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	o.paths = pathutil.New(o.fs)
	return o
}

// WorkTree returns the absolute path of the work tree.
func (r *Repository) WorkTree() string {
	return r.workTree
}

// MetadataRoot returns the absolute path of the .codesync directory.
func (r *Repository) MetadataRoot() string {
	return r.metadataRoot
}

// Config returns the repository configuration. It is nil once the repository
// is closed.
func (r *Repository) Config() *config.Store {
	return r.config
}

// Close releases the configuration store and forgets both paths. It may be
// called any number of times, on a nil or partially built Repository too.
func (r *Repository) Close() {
	if r == nil {
		return
	}
	if r.config != nil {
		r.config.Close()
		r.config = nil
	}
	r.workTree = ""
	r.metadataRoot = ""
}
