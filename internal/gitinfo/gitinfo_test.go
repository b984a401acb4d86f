package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestRead_NotARepository(t *testing.T) {
	_, ok, err := Read(t.TempDir())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRead_UnbornHead(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, ok, err := Read(dir)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRead_Commit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Home\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("index.md")
	require.NoError(t, err)

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Site", Email: "site@example.com", When: when},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	info, ok, err := Read(sub)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, hash.String(), info.Commit)
	require.Equal(t, hash.String()[:8], info.Short)
	require.Equal(t, "master", info.Branch)
	require.True(t, when.Equal(info.Date))

	m := info.Map()
	require.Equal(t, hash.String(), m["commit"])
	require.Equal(t, "master", m["branch"])
}
