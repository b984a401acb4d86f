package cleanup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

func populate(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(dir, filepath.FromSlash(n))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(n), 0o644))
	}
}

func requireConfigError(t *testing.T, err error) {
	t.Helper()
	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok, "%v", err)
	require.Equal(t, foundationerrors.CategoryConfig, ce.Category())
	require.Equal(t, "ConfigurationError", ce.Category().Kind())
}

func TestClean_RemovesContentsKeepsDirectory(t *testing.T) {
	workdir := t.TempDir()
	populate(t, workdir, "build/index.html", "build/blog/post.html", "content/index.md")

	require.NoError(t, Clean(workdir, "build"))

	entries, err := os.ReadDir(filepath.Join(workdir, "build"))
	require.NoError(t, err)
	require.Empty(t, entries)
	require.FileExists(t, filepath.Join(workdir, "content", "index.md"))
}

func TestClean_KeepPreservesTopLevelEntries(t *testing.T) {
	workdir := t.TempDir()
	populate(t, workdir, "build/index.html", "build/assets/css/site.css")

	require.NoError(t, Clean(workdir, "build", Keep("assets/css")))

	require.NoFileExists(t, filepath.Join(workdir, "build", "index.html"))
	require.FileExists(t, filepath.Join(workdir, "build", "assets", "css", "site.css"))
}

func TestClean_OutsideWorkdirIsRejected(t *testing.T) {
	parent := t.TempDir()
	workdir := filepath.Join(parent, "site")
	populate(t, parent, "site/content/index.md", "outside/keep.txt")

	err := Clean(workdir, "../outside")
	requireConfigError(t, err)
	require.FileExists(t, filepath.Join(parent, "outside", "keep.txt"))

	err = Clean(workdir, filepath.Join(parent, "outside"))
	requireConfigError(t, err)
	require.FileExists(t, filepath.Join(parent, "outside", "keep.txt"))
}

func TestClean_WorkdirItselfIsRejected(t *testing.T) {
	workdir := t.TempDir()
	populate(t, workdir, "content/index.md")

	for _, target := range []string{".", "", "build/.."} {
		requireConfigError(t, Clean(workdir, target))
	}
	require.FileExists(t, filepath.Join(workdir, "content", "index.md"))
}

func TestClean_SymlinkEscapeIsRejected(t *testing.T) {
	parent := t.TempDir()
	workdir := filepath.Join(parent, "site")
	populate(t, parent, "site/content/index.md", "outside/keep.txt")
	if err := os.Symlink(filepath.Join(parent, "outside"), filepath.Join(workdir, "build")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	requireConfigError(t, Clean(workdir, "build"))
	require.FileExists(t, filepath.Join(parent, "outside", "keep.txt"))
}

func TestClean_MissingTargetIsNoop(t *testing.T) {
	workdir := t.TempDir()
	require.NoError(t, Clean(workdir, "build/nested"))
	require.NoDirExists(t, filepath.Join(workdir, "build"))
}

func TestClean_FileTargetIsRejected(t *testing.T) {
	workdir := t.TempDir()
	populate(t, workdir, "build")
	requireConfigError(t, Clean(workdir, "build"))
	require.FileExists(t, filepath.Join(workdir, "build"))
}

func TestStage_CleansWithKeep(t *testing.T) {
	workdir := t.TempDir()
	populate(t, workdir, "out/old.html", "out/assets/app.js")

	st := Stage{Workdir: workdir, Target: "out", Keep: []string{"assets"}}
	require.NoError(t, st.Apply(nil))
	require.NoFileExists(t, filepath.Join(workdir, "out", "old.html"))
	require.FileExists(t, filepath.Join(workdir, "out", "assets", "app.js"))
}
