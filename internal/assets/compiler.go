package assets

// Syntax is the input syntax of a Sass source.
type Syntax string

const (
	SyntaxSCSS Syntax = "scss"
	SyntaxSass Syntax = "sass"
)

// CompileRequest describes one Sass entry point.
type CompileRequest struct {
	// Path is the source path relative to the Sass directory.
	Path string

	// Filename is the absolute source path, used for relative imports and
	// source map URLs.
	Filename     string
	Source       string
	Syntax       Syntax
	IncludePaths []string

	// Dev selects expanded output with an embedded source map; otherwise the
	// output is compressed and carries no map.
	Dev bool
}

// CompileResult is the CSS produced for a request. SourceMap is empty unless
// the request was made in dev mode.
type CompileResult struct {
	CSS       string
	SourceMap string
}

// Compiler turns Sass sources into CSS.
type Compiler interface {
	Compile(req CompileRequest) (CompileResult, error)
}
