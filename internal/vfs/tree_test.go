package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "index.html", want: "index.html"},
		{in: "/blog/post.html", want: "blog/post.html"},
		{in: "blog/./post.html", want: "blog/post.html"},
		{in: `blog\post.html`, want: "blog/post.html"},
		{in: "blog/../index.html", want: "index.html"},
		{in: "../outside.html", wantErr: true},
		{in: "a/../../outside.html", wantErr: true},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanPath(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTree_ListIsLexical(t *testing.T) {
	tree := NewTree()
	for _, p := range []string{"z.html", "a/b.html", "a.html", "m/index.html"} {
		require.NoError(t, tree.Put(&File{Path: p}))
	}

	require.Equal(t, []string{"a.html", "a/b.html", "m/index.html", "z.html"}, tree.Paths())
	require.Equal(t, 4, tree.Len())
	for _, f := range tree.List() {
		require.NotNil(t, f.Metadata)
	}
}

func TestTree_PutReplacesAddRejects(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Put(&File{Path: "index.html", Content: []byte("one")}))
	require.NoError(t, tree.Put(&File{Path: "/index.html", Content: []byte("two")}))

	f, ok := tree.Get("index.html")
	require.True(t, ok)
	require.Equal(t, "two", string(f.Content))

	err := tree.Add(&File{Path: "index.html"})
	require.ErrorIs(t, err, ErrPathExists)
	require.Equal(t, 1, tree.Len())
}

func TestTree_PutRejectsEscapingPath(t *testing.T) {
	tree := NewTree()
	err := tree.Put(&File{Path: "../etc/passwd"})
	require.ErrorIs(t, err, ErrInvalidPath)
	require.Zero(t, tree.Len())
}

func TestTree_Move(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Put(&File{Path: "post.md"}))
	require.NoError(t, tree.Put(&File{Path: "other.html"}))

	require.NoError(t, tree.Move("post.md", "post.html"))
	require.False(t, tree.Has("post.md"))
	f, ok := tree.Get("post.html")
	require.True(t, ok)
	require.Equal(t, "post.html", f.Path)

	require.ErrorIs(t, tree.Move("post.html", "other.html"), ErrPathExists)
	require.True(t, tree.Has("post.html"))
}

func TestTree_RemoveMissingIsNoop(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Put(&File{Path: "a.html"}))
	tree.Remove("missing.html")
	tree.Remove("a.html")
	require.Zero(t, tree.Len())
}

func TestLoadAndFlush_RoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "blog", "2024"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.md"), []byte("# Home"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "blog", "2024", "post.md"), []byte("post"), 0o644))

	tree, err := Load(src)
	require.NoError(t, err)
	require.Equal(t, []string{"blog/2024/post.md", "index.md"}, tree.Paths())

	dest := filepath.Join(t.TempDir(), "out")
	n, err := tree.Flush(dest)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	content, err := os.ReadFile(filepath.Join(dest, "blog", "2024", "post.md"))
	require.NoError(t, err)
	require.Equal(t, "post", string(content))
}

func TestLoad_MissingDirIsIOError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryFileSystem))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFlush_BlockedDirectoryIsIOError(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "blog"), []byte("file, not dir"), 0o644))

	tree := NewTree()
	require.NoError(t, tree.Put(&File{Path: "blog/post.html", Content: []byte("post")}))

	n, err := tree.Flush(dest)
	require.Zero(t, n)

	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, foundationerrors.CategoryFileSystem, ce.Category())
	path, _ := ce.Context().GetString("path")
	require.Equal(t, "blog/post.html", path)
	require.NotNil(t, errors.Unwrap(err))
}
