package cleanup

import (
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// Stage empties the destination once every content stage has succeeded, so
// a failed build never leaves the previous output half removed. It does not
// touch the tree.
type Stage struct {
	Workdir string
	Target  string
	Keep    []string
}

func (s Stage) Name() pipeline.StageName { return pipeline.StageClean }

func (s Stage) Apply(*vfs.Tree) error {
	return Clean(s.Workdir, s.Target, Keep(s.Keep...))
}
