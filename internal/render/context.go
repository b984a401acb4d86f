package render

import (
	"html/template"

	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// Keys the render context adds on top of the page metadata.
const (
	ContextSite    = "site"
	ContextPage    = "page"
	ContextContent = "content"
)

// PageURL returns the site-absolute URL of a tree path.
func PageURL(p string) string { return "/" + p }

// NewContext builds the data a layout executes with: a deep copy of the page
// metadata at top level plus site, page and content. The page's own metadata
// is never handed to the template.
func NewContext(f *vfs.File, site map[string]any) map[string]any {
	data := f.Metadata.Clone().Map()
	data[ContextSite] = vfs.Metadata(site).Clone().Map()
	data[ContextPage] = map[string]any{
		"path": f.Path,
		"url":  PageURL(f.Path),
	}
	data[ContextContent] = template.HTML(f.Content)
	return data
}
