package markdown

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// linkRewriter points relative links at Markdown sources to their rendered pages.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			link.Destination = []byte(RewriteLink(string(link.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// IsMarkdownPath reports whether p names a Markdown source file.
func IsMarkdownPath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// HTMLPath replaces the Markdown extension of p with .html.
func HTMLPath(p string) string {
	return strings.TrimSuffix(p, path.Ext(p)) + ".html"
}

// RewriteLink maps a relative link to a Markdown file onto its .html output.
// Absolute URLs, fragments and non-Markdown targets are returned unchanged.
func RewriteLink(dest string) string {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "//") {
		return dest
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return dest
	}
	if !IsMarkdownPath(u.Path) {
		return dest
	}

	rest := ""
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		rest = dest[i:]
		dest = dest[:i]
	}
	return HTMLPath(dest) + rest
}
