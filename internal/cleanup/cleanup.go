// Package cleanup empties build destinations without ever reaching outside
// the working directory.
package cleanup

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/util/sets"
)

type options struct {
	keep sets.Set[string]
}

// Option customizes Clean.
type Option func(*options)

// Keep preserves the named top-level entries of the target.
func Keep(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			if n = strings.Trim(filepath.ToSlash(n), "/"); n != "" {
				o.keep.Add(strings.SplitN(n, "/", 2)[0])
			}
		}
	}
}

// Resolve returns the absolute, symlink-free path of target relative to
// workdir. It fails with a configuration error when the result is workdir
// itself or lies outside it.
func Resolve(workdir, target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", foundationerrors.ConfigError("clean target is empty").Build()
	}

	root, err := filepath.Abs(workdir)
	if err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "invalid working directory").
			Fatal().
			WithContext("path", workdir).
			Build()
	}
	if resolved, evalErr := filepath.EvalSymlinks(root); evalErr == nil {
		root = resolved
	}

	abs := target
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs, err = evalExisting(filepath.Clean(abs))
	if err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to resolve clean target").
			Fatal().
			WithContext("path", target).
			Build()
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", foundationerrors.ConfigError("clean target must be inside the working directory").
			WithContext("path", target).
			WithContext("workdir", root).
			Build()
	}
	return abs, nil
}

// evalExisting resolves symlinks in the longest existing prefix of p and
// re-appends the missing remainder.
func evalExisting(p string) (string, error) {
	var missing []string
	current := p
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return p, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// Clean removes the contents of target, which is resolved against workdir.
// The directory itself is kept. A missing target is not an error.
func Clean(workdir, target string, opts ...Option) error {
	o := options{keep: sets.New[string]()}
	for _, opt := range opts {
		opt(&o)
	}

	dir, err := Resolve(workdir, target)
	if err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to inspect clean target").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	if !info.IsDir() {
		return foundationerrors.ConfigError("clean target is not a directory").
			WithContext("path", dir).
			Build()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to list clean target").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	for _, e := range entries {
		if o.keep.Has(e.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to remove file").
				Fatal().
				WithContext("path", filepath.Join(dir, e.Name())).
				Build()
		}
	}
	return nil
}
