package repository

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrNotFound                 = errors.New("no repository found")
	ErrNotARepository           = errors.New("not a codesync repository")
	ErrNotADirectory            = errors.New("not a directory")
	ErrNotEmpty                 = errors.New("metadata directory is not empty")
	ErrMissingConfig            = errors.New("configuration file missing")
	ErrConfigParse              = errors.New("invalid configuration")
	ErrUnsupportedFormatVersion = errors.New("unsupported repository format version")
	ErrIO                       = errors.New("i/o error")
	ErrClosed                   = errors.New("repository is closed")
)

// Error describes a failed repository operation.
type Error struct {
	Op   string // open, discover, bootstrap or resolve
	Path string
	Kind error

	// Version is the rejected format version when Kind is
	// ErrUnsupportedFormatVersion.
	Version int

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Kind == ErrUnsupportedFormatVersion {
		msg = fmt.Sprintf("%s %d", msg, e.Version)
	}
	s := fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
