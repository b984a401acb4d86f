package stages

import (
	"bytes"

	"github.com/klauspost/compress/gzip"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

var compressibleExt = map[string]bool{
	".html": true,
	".css":  true,
	".js":   true,
	".svg":  true,
	".xml":  true,
	".json": true,
	".txt":  true,
}

// PrecompressStage adds a gzip sibling (<path>.gz) for every text asset so
// static servers can serve pre-compressed responses. The gzip header carries
// no name or timestamp, which keeps the output byte-for-byte reproducible.
type PrecompressStage struct{}

func (PrecompressStage) Name() pipeline.StageName { return pipeline.StagePrecompress }

func (PrecompressStage) Apply(tree *vfs.Tree) error {
	for _, f := range tree.List() {
		if !compressibleExt[f.Ext()] {
			continue
		}
		var buf bytes.Buffer
		zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to create gzip writer").Build()
		}
		if _, err := zw.Write(f.Content); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to compress file").
				WithContext("path", f.Path).
				Build()
		}
		if err := zw.Close(); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "failed to compress file").
				WithContext("path", f.Path).
				Build()
		}

		gz := &vfs.File{Path: f.Path + ".gz", Content: buf.Bytes(), Metadata: vfs.Metadata{}}
		if err := tree.Add(gz); err != nil {
			return foundationerrors.StructureError("compressed sibling collides with an existing file").
				WithCause(err).
				WithContext("path", gz.Path).
				Build()
		}
	}
	return nil
}
