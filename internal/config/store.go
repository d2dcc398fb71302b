// Package config implements the repository configuration store: a git-style
// INI file addressed with dotted keys such as "core.bare".
package config

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// Store holds configuration sections in memory.
type Store struct {
	file    *ini.File
	lastErr error
}

// New returns an empty store.
func New() *Store {
	return &Store{file: ini.Empty()}
}

// ReadFile replaces the store contents with the file at path. When parsing
// fails the previous contents are kept and ErrorText reports why.
func (s *Store) ReadFile(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		s.lastErr = err
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Load replaces the store contents with what r yields.
func (s *Store) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		s.lastErr = err
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := s.load(data); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (s *Store) load(data []byte) error {
	f, err := ini.Load(data)
	if err != nil {
		s.lastErr = err
		return err
	}
	s.file = f
	s.lastErr = nil
	return nil
}

// WriteTo serializes every section to w.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	return s.ini().WriteTo(w)
}

// WriteFile serializes the store to path, replacing any existing file.
func (s *Store) WriteFile(fs afero.Fs, path string) error {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// ErrorText describes the last failed read, or is empty.
func (s *Store) ErrorText() string {
	if s.lastErr == nil {
		return ""
	}
	return s.lastErr.Error()
}

// HasSection reports whether a section called name exists.
func (s *Store) HasSection(name string) bool {
	return s.ini().HasSection(name)
}

// EnsureSection creates the section called name if it is missing.
func (s *Store) EnsureSection(name string) {
	if !s.HasSection(name) {
		// NewSection only fails on an empty name, which Section maps to DEFAULT.
		_, _ = s.ini().NewSection(name)
	}
}

// Lookup returns the raw value stored under key.
func (s *Store) Lookup(key string) (string, bool) {
	section, name := splitKey(key)
	f := s.ini()
	if !f.HasSection(section) {
		return "", false
	}
	sec := f.Section(section)
	if !sec.HasKey(name) {
		return "", false
	}
	return sec.Key(name).String(), true
}

// LookupInt returns the integer stored under key. A missing key is not an
// error; a value that is not an integer is.
func (s *Store) LookupInt(key string) (int, bool, error) {
	raw, ok := s.Lookup(key)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, true, fmt.Errorf("config value %s = %q is not an integer", key, raw)
	}
	return v, true, nil
}

// LookupBool returns the boolean stored under key.
func (s *Store) LookupBool(key string) (bool, bool, error) {
	section, name := splitKey(key)
	if _, ok := s.Lookup(key); !ok {
		return false, false, nil
	}
	v, err := s.ini().Section(section).Key(name).Bool()
	if err != nil {
		return false, true, fmt.Errorf("config value %s is not a boolean: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, creating the section if needed.
func (s *Store) Set(key, value string) {
	section, name := splitKey(key)
	s.EnsureSection(section)
	s.ini().Section(section).Key(name).SetValue(value)
}

// SetInt stores an integer under key.
func (s *Store) SetInt(key string, value int) {
	s.Set(key, strconv.Itoa(value))
}

// SetBool stores a boolean under key.
func (s *Store) SetBool(key string, value bool) {
	s.Set(key, strconv.FormatBool(value))
}

// Close drops every section. The store stays usable and empty afterwards.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.file = nil
	s.lastErr = nil
}

func (s *Store) ini() *ini.File {
	if s.file == nil {
		s.file = ini.Empty()
	}
	return s.file
}

// splitKey splits "a.b.c" into section "a.b" and name "c". Keys without a dot
// live in the default section.
func splitKey(key string) (section, name string) {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return ini.DefaultSection, key
	}
	return key[:i], key[i+1:]
}
