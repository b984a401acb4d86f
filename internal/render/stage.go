package render

import (
	"bytes"
	"log/slog"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/logfields"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// Options configures a Stage.
type Options struct {
	LayoutsDir    string
	DefaultLayout string
	Site          map[string]any
	Helpers       Helpers
}

// Stage renders every .html file of the tree through its layout chain.
// Other files pass through untouched.
type Stage struct {
	opts Options
}

// NewStage returns a render stage. Layouts are read when the stage runs.
func NewStage(opts Options) *Stage {
	if opts.DefaultLayout == "" {
		opts.DefaultLayout = DefaultLayout
	}
	if opts.Site == nil {
		opts.Site = map[string]any{}
	}
	return &Stage{opts: opts}
}

func (s *Stage) Name() pipeline.StageName { return pipeline.StageRender }

func (s *Stage) Apply(tree *vfs.Tree) error {
	layouts, err := LoadLayouts(s.opts.LayoutsDir, s.opts.Helpers)
	if err != nil {
		return err
	}
	slog.Debug("Layouts loaded", logfields.Path(s.opts.LayoutsDir), slog.Any("layouts", layouts.Names()))

	for _, f := range tree.List() {
		if f.Ext() != ".html" {
			continue
		}
		out, err := s.render(layouts, f)
		if err != nil {
			return err
		}
		f.Content = out
	}
	return nil
}

func (s *Stage) render(layouts *Layouts, f *vfs.File) ([]byte, error) {
	name, ok := f.Metadata.Layout()
	if !ok {
		name = s.opts.DefaultLayout
	}

	t, err := layouts.Compile(name)
	if err != nil {
		if ce, ok := foundationerrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", f.Path)
		}
		return nil, err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, NewContext(f, s.opts.Site)); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryParse, "failed to render layout").
			Fatal().
			WithContext("path", f.Path).
			WithContext("layout", name).
			Build()
	}
	return buf.Bytes(), nil
}
