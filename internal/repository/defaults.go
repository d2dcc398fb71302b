package repository

import (
	"fmt"
	"io"
)

// WriteDefaultConfig sets the default core settings in the repository config,
// overwriting existing values, and serializes the whole config to w.
func WriteDefaultConfig(r *Repository, w io.Writer) error {
	if r.config == nil {
		return ErrClosed
	}
	r.config.EnsureSection(coreSection)
	r.config.SetInt(KeyFormatVersion, FormatVersion)
	r.config.SetBool(KeyFileMode, false)
	r.config.SetBool(KeyBare, false)
	if _, err := r.config.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
