package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	sep := string(os.PathSeparator)
	tests := []struct {
		base, segment, want string
	}{
		{"a", "b", "a" + sep + "b"},
		{"a" + sep, "b", "a" + sep + "b"},
		{sep, ".codesync", sep + ".codesync"},
		{"a", "..", "a" + sep + ".."},
		{"a" + sep + ".", "b", "a" + sep + "." + sep + "b"},
		{"", "b", "b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Join(tt.base, tt.segment), "Join(%q, %q)", tt.base, tt.segment)
	}
}

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("content"), 0o644))

	r := New(nil)
	assert.True(t, r.Exists(dir))
	assert.True(t, r.IsDir(dir))
	assert.True(t, r.Exists(file))
	assert.False(t, r.IsDir(file))
	assert.False(t, r.Exists(filepath.Join(dir, "missing")))
	assert.False(t, r.IsDir(filepath.Join(dir, "missing")))
}

func TestMkdirAll(t *testing.T) {
	dir := t.TempDir()
	r := New(nil)

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, r.MkdirAll(nested))
	assert.True(t, r.IsDir(nested))

	// Already present is fine.
	require.NoError(t, r.MkdirAll(nested))
}

func TestMkdirAllCollidesWithFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("content"), 0o644))

	r := New(nil)
	err := r.MkdirAll(filepath.Join(file, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), file)
}

func TestMkdirAllReadOnly(t *testing.T) {
	r := New(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := r.MkdirAll("/work/tree")
	require.Error(t, err)
	assert.False(t, r.Exists("/work/tree"))
}

func TestIsEmpty(t *testing.T) {
	dir := t.TempDir()
	r := New(nil)

	empty, err := r.IsEmpty(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	empty, err = r.IsEmpty(dir)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = r.IsEmpty(file)
	assert.ErrorIs(t, err, ErrNotDir)

	_, err = r.IsEmpty(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsEmptyMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/repo/.codesync", 0o755))
	r := New(fs)

	empty, err := r.IsEmpty("/repo/.codesync")
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, afero.WriteFile(fs, "/repo/.codesync/HEAD", []byte("x"), 0o644))
	empty, err = r.IsEmpty("/repo/.codesync")
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestCanonicalResolvesSymlinks(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	r := New(nil)
	got, err := r.Canonical(filepath.Join(link, ".", "..", "link"))
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestCanonicalMissingPath(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	r := New(nil)
	got, err := r.Canonical(filepath.Join(dir, "missing", ".."))
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestCanonicalMemFsIsLexical(t *testing.T) {
	r := New(afero.NewMemMapFs())
	got, err := r.Canonical("/a/b/../c/.")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/a/c"), got)
}
