package assets

import (
	"path"

	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// DefaultOutputDir is where copied assets land relative to the target.
const DefaultOutputDir = "assets"

// CopyStage places every file unchanged under OutputDir.
type CopyStage struct {
	OutputDir string
}

func (s CopyStage) Name() pipeline.StageName { return pipeline.StageCopyAssets }

func (s CopyStage) Apply(tree *vfs.Tree) error {
	out := s.OutputDir
	if out == "" {
		out = DefaultOutputDir
	}
	return relocate(tree, func(f *vfs.File) (*vfs.File, error) {
		return &vfs.File{Path: path.Join(out, f.Path), Content: f.Content, Metadata: f.Metadata}, nil
	})
}
