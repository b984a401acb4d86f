package markdown

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Summary holds values derived from rendered HTML.
type Summary struct {
	Title   string
	Excerpt string
}

// Summarize returns the text of the first <h1> and of the first <p> in doc.
func Summarize(doc []byte) Summary {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return Summary{}
	}

	var s Summary
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if s.Title != "" && s.Excerpt != "" {
			return
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H1:
				if s.Title == "" {
					s.Title = textOf(n)
				}
				return
			case atom.P:
				if s.Excerpt == "" {
					s.Excerpt = textOf(n)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return s
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
