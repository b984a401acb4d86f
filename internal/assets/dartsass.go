package assets

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/bep/godartsass/v2"
)

// DartSassOptions configures the embedded Dart Sass process.
type DartSassOptions struct {
	// Binary is the dart-sass executable; empty means "sass" on PATH.
	Binary string

	Timeout time.Duration
}

// DartSass compiles through a long-running Dart Sass process speaking the
// embedded protocol. Close must be called to stop the process.
type DartSass struct {
	transpiler *godartsass.Transpiler
}

// NewDartSass starts the Dart Sass process.
func NewDartSass(opts DartSassOptions) (*DartSass, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: opts.Binary,
		Timeout:                  opts.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return &DartSass{transpiler: t}, nil
}

func (d *DartSass) Compile(req CompileRequest) (CompileResult, error) {
	args := godartsass.Args{
		Source:       req.Source,
		IncludePaths: req.IncludePaths,
		OutputStyle:  godartsass.OutputStyleCompressed,
		SourceSyntax: godartsass.SourceSyntaxSCSS,
	}
	if req.Filename != "" {
		args.URL = (&url.URL{Scheme: "file", Path: filepath.ToSlash(req.Filename)}).String()
		args.IncludePaths = append([]string{filepath.Dir(req.Filename)}, req.IncludePaths...)
	}
	if req.Syntax == SyntaxSass {
		args.SourceSyntax = godartsass.SourceSyntaxSASS
	}
	if req.Dev {
		args.OutputStyle = godartsass.OutputStyleExpanded
		args.EnableSourceMap = true
		args.SourceMapIncludeSources = true
	}

	res, err := d.transpiler.Execute(args)
	if err != nil {
		return CompileResult{}, err
	}
	return CompileResult{CSS: res.CSS, SourceMap: res.SourceMap}, nil
}

// Close stops the Dart Sass process.
func (d *DartSass) Close() error {
	return d.transpiler.Close()
}
