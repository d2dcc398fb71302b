package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMissing(t *testing.T) {
	s := New()

	_, ok := s.Lookup("core.bare")
	assert.False(t, ok)

	v, ok, err := s.LookupInt("core.repository_format_version")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, v)

	_, ok, err = s.LookupBool("core.bare")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetAndLookup(t *testing.T) {
	s := New()
	s.SetInt("core.repository_format_version", 0)
	s.SetBool("core.filemode", false)
	s.SetBool("core.bare", true)
	s.Set("user.name", "Tests")

	v, ok, err := s.LookupInt("core.repository_format_version")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	b, ok, err := s.LookupBool("core.filemode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, b)

	b, ok, err = s.LookupBool("core.bare")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)

	name, ok := s.Lookup("user.name")
	assert.True(t, ok)
	assert.Equal(t, "Tests", name)

	// Overwrite.
	s.SetInt("core.repository_format_version", 3)
	v, _, err = s.LookupInt("core.repository_format_version")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestLookupWrongType(t *testing.T) {
	s := New()
	s.Set("core.repository_format_version", "zero")
	s.Set("core.bare", "maybe")

	_, ok, err := s.LookupInt("core.repository_format_version")
	assert.True(t, ok)
	assert.Error(t, err)

	_, ok, err = s.LookupBool("core.bare")
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestEnsureSection(t *testing.T) {
	s := New()
	assert.False(t, s.HasSection("core"))
	s.EnsureSection("core")
	assert.True(t, s.HasSection("core"))

	s.SetBool("core.bare", false)
	s.EnsureSection("core")
	_, ok := s.Lookup("core.bare")
	assert.True(t, ok, "EnsureSection must not drop existing keys")
}

func TestWriteAndReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New()
	s.SetInt("core.repository_format_version", 0)
	s.SetBool("core.filemode", false)
	s.SetBool("core.bare", false)
	require.NoError(t, s.WriteFile(fs, "/config"))

	data, err := afero.ReadFile(fs, "/config")
	require.NoError(t, err)
	assert.Contains(t, string(data), "[core]")
	assert.Contains(t, string(data), "repository_format_version")

	loaded := New()
	require.NoError(t, loaded.ReadFile(fs, "/config"))
	v, ok, err := loaded.LookupInt("core.repository_format_version")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, "", loaded.ErrorText())
}

func TestReadFileMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/config", []byte("[core\n"), 0o644))

	s := New()
	s.SetBool("core.bare", true)
	err := s.ReadFile(fs, "/config")
	require.Error(t, err)
	assert.NotEmpty(t, s.ErrorText())
	assert.Contains(t, err.Error(), s.ErrorText())

	// The previous contents survive a failed read.
	b, ok, err := s.LookupBool("core.bare")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)
}

func TestReadFileMissing(t *testing.T) {
	s := New()
	err := s.ReadFile(afero.NewMemMapFs(), "/config")
	require.Error(t, err)
	assert.NotEmpty(t, s.ErrorText())
}

func TestLoadAndWriteTo(t *testing.T) {
	s := New()
	require.NoError(t, s.Load(strings.NewReader("[core]\nrepository_format_version = 7\n")))

	v, ok, err := s.LookupInt("core.repository_format_version")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "repository_format_version")
}

func TestClose(t *testing.T) {
	s := New()
	s.SetBool("core.bare", false)
	s.Close()
	s.Close()

	_, ok := s.Lookup("core.bare")
	assert.False(t, ok)

	var nilStore *Store
	nilStore.Close()
}
