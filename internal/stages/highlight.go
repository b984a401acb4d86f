package stages

import (
	"bytes"
	"errors"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/markdown"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// DefaultHighlightPath is where the syntax highlighting stylesheet is written.
const DefaultHighlightPath = "highlight.css"

// HighlightStage adds the stylesheet for the class-based code highlighting
// emitted by the Markdown converter.
type HighlightStage struct {
	Converter *markdown.Converter
	Path      string
}

func (s HighlightStage) Name() pipeline.StageName { return pipeline.StageHighlight }

func (s HighlightStage) Apply(tree *vfs.Tree) error {
	p := s.Path
	if p == "" {
		p = DefaultHighlightPath
	}
	var buf bytes.Buffer
	if err := s.Converter.StyleSheet(&buf); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to write highlight stylesheet").Build()
	}
	err := tree.Add(&vfs.File{Path: p, Content: buf.Bytes()})
	if errors.Is(err, vfs.ErrPathExists) {
		return foundationerrors.StructureError("highlight stylesheet collides with an existing file").
			WithContext("path", p).
			Build()
	}
	return err
}
