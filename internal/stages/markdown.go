package stages

import (
	"errors"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/frontmatter"
	"git.home.luguber.info/inful/website-builder/internal/markdown"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// MarkdownStage converts Markdown sources to HTML pages. Front matter becomes
// metadata and the file is re-keyed from .md/.markdown to .html.
type MarkdownStage struct {
	converter *markdown.Converter
}

// NewMarkdownStage returns a stage rendering through conv.
func NewMarkdownStage(conv *markdown.Converter) *MarkdownStage {
	return &MarkdownStage{converter: conv}
}

func (s *MarkdownStage) Name() pipeline.StageName { return pipeline.StageMarkdown }

func (s *MarkdownStage) Apply(tree *vfs.Tree) error {
	for _, f := range tree.List() {
		if !markdown.IsMarkdownPath(f.Path) {
			continue
		}
		if err := s.convert(tree, f); err != nil {
			return err
		}
	}
	return nil
}

func (s *MarkdownStage) convert(tree *vfs.Tree, f *vfs.File) error {
	source := f.Path

	fields, body, err := frontmatter.Parse(f.Content)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryParse, "malformed front matter").
			Fatal().
			WithContext("path", source).
			Build()
	}

	html, err := s.converter.Convert(body)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryParse, "failed to render markdown").
			Fatal().
			WithContext("path", source).
			Build()
	}

	meta := f.Metadata.Merge(vfs.Metadata(fields))
	summary := markdown.Summarize(html)
	if _, ok := meta.Title(); !ok && summary.Title != "" {
		meta[vfs.KeyTitle] = summary.Title
	}
	if summary.Excerpt != "" {
		meta.SetDefault(vfs.KeyExcerpt, summary.Excerpt)
	}
	if _, ok := meta[vfs.KeyFingerprint]; !ok {
		fp, fpErr := ComputeFingerprint(fields, body)
		if fpErr != nil {
			return foundationerrors.WrapError(fpErr, foundationerrors.CategoryParse, "failed to fingerprint document").
				Fatal().
				WithContext("path", source).
				Build()
		}
		meta[vfs.KeyFingerprint] = fp
	}
	meta.SetDefault(vfs.KeySource, source)

	f.Content = html
	f.Metadata = meta

	target := markdown.HTMLPath(source)
	if err := tree.Move(source, target); err != nil {
		if errors.Is(err, vfs.ErrPathExists) {
			return foundationerrors.StructureError("markdown output collides with an existing file").
				WithCause(err).
				WithContext("path", target).
				WithContext("source", source).
				Build()
		}
		return foundationerrors.WrapError(err, foundationerrors.CategoryStructure, "invalid output path").
			Fatal().
			WithContext("path", target).
			Build()
	}
	return nil
}
