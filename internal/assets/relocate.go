package assets

import (
	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// relocate replaces the contents of tree with the files produced by fn. fn
// returns nil to drop a file. All outputs are computed before the tree is
// touched, so a failure leaves it unchanged.
func relocate(tree *vfs.Tree, fn func(f *vfs.File) (*vfs.File, error)) error {
	staged := vfs.NewTree()
	for _, f := range tree.List() {
		out, err := fn(f)
		if err != nil {
			return err
		}
		if out == nil {
			continue
		}
		if err := staged.Add(out); err != nil {
			return foundationerrors.StructureError("asset output collides with another asset").
				WithCause(err).
				WithContext("path", out.Path).
				WithContext("source", f.Path).
				Build()
		}
	}

	for _, p := range tree.Paths() {
		tree.Remove(p)
	}
	for _, f := range staged.List() {
		if err := tree.Put(f); err != nil {
			return err
		}
	}
	return nil
}
