// Package markdown converts Markdown bodies to HTML and inspects the result.
package markdown

import (
	"bytes"
	"io"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultHighlightStyle is the chroma style used for the generated stylesheet.
const DefaultHighlightStyle = "github"

// Options controls how Markdown is rendered.
type Options struct {
	// HighlightStyle names the chroma style used by StyleSheet.
	HighlightStyle string

	// KeepMarkdownLinks disables rewriting of relative .md links to .html.
	KeepMarkdownLinks bool
}

// Converter renders Markdown to HTML. It is safe for concurrent use.
type Converter struct {
	md    goldmark.Markdown
	style string
}

// New returns a Converter with GFM, heading ids and class-based syntax
// highlighting enabled. Raw HTML in the source is passed through.
func New(opts Options) *Converter {
	style := opts.HighlightStyle
	if style == "" {
		style = DefaultHighlightStyle
	}

	parserOpts := []parser.Option{parser.WithAutoHeadingID()}
	if !opts.KeepMarkdownLinks {
		parserOpts = append(parserOpts, parser.WithASTTransformers(util.Prioritized(linkRewriter{}, 100)))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	return &Converter{md: md, style: style}
}

// Convert renders body (front matter already removed) to HTML.
func (c *Converter) Convert(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StyleSheet writes the CSS matching the highlight classes emitted by Convert.
func (c *Converter) StyleSheet(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(c.style))
}
