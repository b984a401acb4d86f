package stages

import (
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

const mediaTypeHTML = "text/html"

// MinifyStage compresses rendered HTML pages, including inline styles and
// scripts. Document and end tags are kept so layouts stay well formed.
type MinifyStage struct {
	m *minify.M
}

// NewMinifyStage returns a MinifyStage with the HTML, CSS and JS minifiers registered.
func NewMinifyStage() *MinifyStage {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`), js.Minify)
	m.Add(mediaTypeHTML, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
	})
	return &MinifyStage{m: m}
}

func (s *MinifyStage) Name() pipeline.StageName { return pipeline.StageMinify }

func (s *MinifyStage) Apply(tree *vfs.Tree) error {
	for _, f := range tree.List() {
		if f.Ext() != ".html" {
			continue
		}
		out, err := s.m.Bytes(mediaTypeHTML, f.Content)
		if err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryParse, "failed to minify html").
				Fatal().
				WithContext("path", f.Path).
				Build()
		}
		f.Content = out
	}
	return nil
}
