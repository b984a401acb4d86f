// Package render applies layout templates to HTML pages.
//
// Layouts are html/template files in the layouts directory. A layout may name
// a parent with an "extends" key in its front matter; the chain is compiled
// root first so that {{define}} blocks in a child replace the {{block}}
// placeholders of its parents. Files below the "templates" subdirectory are
// shared includes, available to every layout under their relative path.
//
// Every render receives the same immutable Helpers value (slug, now, date);
// helpers never see the file tree.
package render
