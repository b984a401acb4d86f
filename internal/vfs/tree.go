package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tidwall/btree"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
)

var (
	// ErrInvalidPath is returned for empty paths and paths escaping the tree root.
	ErrInvalidPath = errors.New("invalid tree path")
	// ErrPathExists is returned by Add when the path is already taken.
	ErrPathExists = errors.New("path already exists in tree")
)

// File is one entry of the tree.
type File struct {
	Path     string
	Content  []byte
	Metadata Metadata
}

// Ext returns the lower-cased extension of the file path, including the dot.
func (f *File) Ext() string {
	return strings.ToLower(path.Ext(f.Path))
}

// Tree is an ordered map of relative path to File.
//
// Tree is not safe for concurrent use; a build owns its tree exclusively.
type Tree struct {
	files *btree.Map[string, *File]
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{files: btree.NewMap[string, *File](0)}
}

// CleanPath normalizes p to the canonical tree form: slash separated, no
// leading slash, no dot segments. Paths that escape the root are rejected.
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return cleaned, nil
}

// Put stores f under its (normalized) path, replacing any existing entry.
func (t *Tree) Put(f *File) error {
	p, err := CleanPath(f.Path)
	if err != nil {
		return err
	}
	f.Path = p
	if f.Metadata == nil {
		f.Metadata = Metadata{}
	}
	t.files.Set(p, f)
	return nil
}

// Add stores f only if its path is free, returning ErrPathExists otherwise.
func (t *Tree) Add(f *File) error {
	p, err := CleanPath(f.Path)
	if err != nil {
		return err
	}
	if _, ok := t.files.Get(p); ok {
		return fmt.Errorf("%w: %s", ErrPathExists, p)
	}
	f.Path = p
	return t.Put(f)
}

// Get returns the file stored at p.
func (t *Tree) Get(p string) (*File, bool) {
	cleaned, err := CleanPath(p)
	if err != nil {
		return nil, false
	}
	return t.files.Get(cleaned)
}

// Has reports whether p is present.
func (t *Tree) Has(p string) bool {
	_, ok := t.Get(p)
	return ok
}

// Remove deletes p from the tree; removing a missing path is a no-op.
func (t *Tree) Remove(p string) {
	if cleaned, err := CleanPath(p); err == nil {
		t.files.Delete(cleaned)
	}
}

// Move re-keys the file at from to the path to. The destination must be free.
func (t *Tree) Move(from, to string) error {
	f, ok := t.Get(from)
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrInvalidPath, from)
	}
	dest, err := CleanPath(to)
	if err != nil {
		return err
	}
	if dest == f.Path {
		return nil
	}
	if t.Has(dest) {
		return fmt.Errorf("%w: %s", ErrPathExists, dest)
	}
	t.files.Delete(f.Path)
	f.Path = dest
	t.files.Set(dest, f)
	return nil
}

// List returns a snapshot of all files in lexical path order. Mutating the
// tree while ranging over the snapshot is safe.
func (t *Tree) List() []*File {
	return t.files.Values()
}

// Paths returns all paths in lexical order.
func (t *Tree) Paths() []string {
	return t.files.Keys()
}

// Len returns the number of files.
func (t *Tree) Len() int {
	return t.files.Len()
}

// Load reads every regular file below dir into a new tree, keyed by its path
// relative to dir. Metadata starts empty.
func Load(dir string) (*Tree, error) {
	tree := NewTree()
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(p)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return tree.Put(&File{Path: filepath.ToSlash(rel), Content: content, Metadata: Metadata{}})
	})
	if err != nil {
		return nil, foundationerrors.IOError("failed to read source directory").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}
	return tree, nil
}

// Flush writes every file to dest/<path>, creating directories as needed, and
// returns the number of files written.
func (t *Tree) Flush(dest string) (int, error) {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, foundationerrors.IOError("failed to create destination").
			WithCause(err).
			WithContext("path", dest).
			Build()
	}

	written := 0
	for _, f := range t.List() {
		target := filepath.Join(dest, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, foundationerrors.IOError("failed to create directory").
				WithCause(err).
				WithContext("path", f.Path).
				Build()
		}
		if err := os.WriteFile(target, f.Content, 0o644); err != nil {
			return written, foundationerrors.IOError("failed to write file").
				WithCause(err).
				WithContext("path", f.Path).
				Build()
		}
		written++
	}
	return written, nil
}
