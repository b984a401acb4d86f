package testing

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FileAssertions provides chained assertions on a destination tree.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

func (fa *FileAssertions) full(rel string) string {
	return filepath.Join(fa.baseDir, filepath.FromSlash(rel))
}

// AssertFileExists validates that a regular file exists.
func (fa *FileAssertions) AssertFileExists(rel string) *FileAssertions {
	fa.t.Helper()
	info, err := os.Stat(fa.full(rel))
	if assert.NoError(fa.t, err, "expected file to exist: %s", rel) {
		assert.False(fa.t, info.IsDir(), "expected %s to be a file, but it's a directory", rel)
	}
	return fa
}

// AssertFileNotExists validates that nothing exists at rel.
func (fa *FileAssertions) AssertFileNotExists(rel string) *FileAssertions {
	fa.t.Helper()
	_, err := os.Stat(fa.full(rel))
	assert.ErrorIs(fa.t, err, fs.ErrNotExist, "expected file to not exist: %s", rel)
	return fa
}

// AssertDirExists validates that a directory exists.
func (fa *FileAssertions) AssertDirExists(rel string) *FileAssertions {
	fa.t.Helper()
	assert.DirExists(fa.t, fa.full(rel))
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(rel, expected string) *FileAssertions {
	fa.t.Helper()
	content, err := os.ReadFile(fa.full(rel))
	if assert.NoError(fa.t, err) {
		assert.Contains(fa.t, string(content), expected, "file %s", rel)
	}
	return fa
}

// AssertFileEquals validates the exact content of a file.
func (fa *FileAssertions) AssertFileEquals(rel, expected string) *FileAssertions {
	fa.t.Helper()
	content, err := os.ReadFile(fa.full(rel))
	if assert.NoError(fa.t, err) {
		assert.Equal(fa.t, expected, string(content), "file %s", rel)
	}
	return fa
}

// AssertFiles validates that the tree holds exactly the given files.
func (fa *FileAssertions) AssertFiles(expected ...string) *FileAssertions {
	fa.t.Helper()
	want := append([]string(nil), expected...)
	sort.Strings(want)
	assert.Equal(fa.t, want, fa.ListFiles())
	return fa
}

// ListFiles returns every regular file below the base directory as sorted
// slash-separated relative paths. A missing base yields nil.
func (fa *FileAssertions) ListFiles() []string {
	fa.t.Helper()
	var files []string
	err := filepath.WalkDir(fa.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, _ := filepath.Rel(fa.baseDir, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		fa.t.Errorf("Failed to walk %s: %v", fa.baseDir, err)
	}
	sort.Strings(files)
	return files
}

// Snapshot returns path to content for every file below the base directory.
func (fa *FileAssertions) Snapshot() map[string]string {
	fa.t.Helper()
	out := map[string]string{}
	for _, rel := range fa.ListFiles() {
		out[rel] = fa.GetFileContent(rel)
	}
	return out
}

// GetFileContent reads and returns the content of a file.
func (fa *FileAssertions) GetFileContent(rel string) string {
	fa.t.Helper()
	content, err := os.ReadFile(fa.full(rel))
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", rel, err)
	}
	return string(content)
}

// AssertNoFileContains validates that no file below the base contains text.
func (fa *FileAssertions) AssertNoFileContains(text string) *FileAssertions {
	fa.t.Helper()
	for rel, content := range fa.Snapshot() {
		assert.False(fa.t, strings.Contains(content, text), "file %s unexpectedly contains %q", rel, text)
	}
	return fa
}
