package assets

import (
	"encoding/base64"
	"path"
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/website-builder/internal/foundation/errors"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// DefaultSassOutputDir is where compiled CSS lands relative to the target.
const DefaultSassOutputDir = "assets/css"

// SassOptions configures a SassStage.
type SassOptions struct {
	// SourceDir is the absolute Sass directory the tree was loaded from.
	SourceDir string

	OutputDir    string
	IncludePaths []string
	Dev          bool
}

// SassStage compiles every .scss and .sass entry point to CSS below
// OutputDir. Partials (names starting with "_") are importable but not
// emitted, and any other file is copied unchanged. The first compile failure
// aborts the stage.
type SassStage struct {
	compiler Compiler
	opts     SassOptions
}

// NewSassStage returns a stage compiling through c.
func NewSassStage(c Compiler, opts SassOptions) *SassStage {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultSassOutputDir
	}
	return &SassStage{compiler: c, opts: opts}
}

func (s *SassStage) Name() pipeline.StageName { return pipeline.StageSass }

func (s *SassStage) Apply(tree *vfs.Tree) error {
	return relocate(tree, func(f *vfs.File) (*vfs.File, error) {
		syntax, ok := sassSyntax(f.Path)
		if !ok {
			return &vfs.File{Path: path.Join(s.opts.OutputDir, f.Path), Content: f.Content, Metadata: f.Metadata}, nil
		}
		if strings.HasPrefix(path.Base(f.Path), "_") {
			return nil, nil
		}

		css, err := s.compile(f, syntax)
		if err != nil {
			return nil, err
		}
		out := path.Join(s.opts.OutputDir, strings.TrimSuffix(f.Path, path.Ext(f.Path))+".css")
		return &vfs.File{Path: out, Content: css, Metadata: vfs.Metadata{vfs.KeySource: f.Path}}, nil
	})
}

func (s *SassStage) compile(f *vfs.File, syntax Syntax) ([]byte, error) {
	req := CompileRequest{
		Path:         f.Path,
		Source:       string(f.Content),
		Syntax:       syntax,
		IncludePaths: s.opts.IncludePaths,
		Dev:          s.opts.Dev,
	}
	if s.opts.SourceDir != "" {
		req.Filename = filepath.Join(s.opts.SourceDir, filepath.FromSlash(f.Path))
		req.IncludePaths = append([]string{s.opts.SourceDir}, s.opts.IncludePaths...)
	}

	res, err := s.compiler.Compile(req)
	if err != nil {
		return nil, foundationerrors.CompileError("sass compilation failed").
			WithCause(err).
			WithContext("path", f.Path).
			Build()
	}

	css := strings.TrimRight(res.CSS, "\n")
	if s.opts.Dev && res.SourceMap != "" {
		css += "\n\n" + InlineSourceMap(res.SourceMap)
	}
	return []byte(css + "\n"), nil
}

// InlineSourceMap returns a CSS comment embedding sourceMap as a base64 data URL.
func InlineSourceMap(sourceMap string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(sourceMap))
	return "/*# sourceMappingURL=data:application/json;charset=utf-8;base64," + encoded + " */"
}

func sassSyntax(p string) (Syntax, bool) {
	switch strings.ToLower(path.Ext(p)) {
	case ".scss":
		return SyntaxSCSS, true
	case ".sass":
		return SyntaxSass, true
	}
	return "", false
}
