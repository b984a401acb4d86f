package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// Project is a throwaway site working directory.
type Project struct {
	t       *testing.T
	Workdir string
}

// NewProject creates an empty working directory below t.TempDir().
func NewProject(t *testing.T) *Project {
	t.Helper()
	return &Project{t: t, Workdir: t.TempDir()}
}

// WriteFile writes content at the slash-separated path relative to the workdir.
func (p *Project) WriteFile(rel, content string) *Project {
	p.t.Helper()
	full := filepath.Join(p.Workdir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), testDirPermissions); err != nil {
		p.t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), testFilePermissions); err != nil {
		p.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return p
}

// WriteFiles writes every entry of files.
func (p *Project) WriteFiles(files map[string]string) *Project {
	p.t.Helper()
	for rel, content := range files {
		p.WriteFile(rel, content)
	}
	return p
}

// Mkdir creates a directory relative to the workdir.
func (p *Project) Mkdir(rel string) *Project {
	p.t.Helper()
	if err := os.MkdirAll(filepath.Join(p.Workdir, filepath.FromSlash(rel)), testDirPermissions); err != nil {
		p.t.Fatalf("Failed to create %s: %v", rel, err)
	}
	return p
}

// Path returns the absolute path of rel.
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Workdir, filepath.FromSlash(rel))
}

// Minimal writes a one-page site with a default layout and an empty
// structure directory.
func (p *Project) Minimal() *Project {
	p.t.Helper()
	return p.WriteFiles(map[string]string{
		"content/index.md":     "---\ntitle: Home\n---\nWelcome.\n",
		"layouts/default.html": "<html><title>{{.title}}</title><body>{{.content}}</body></html>",
	}).Mkdir("structure")
}

// Assert returns assertions rooted at rel below the workdir.
func (p *Project) Assert(rel string) *FileAssertions {
	return NewFileAssertions(p.t, p.Path(rel))
}
