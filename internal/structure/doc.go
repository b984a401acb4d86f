// Package structure derives virtual pages from structure rule files.
//
// Rule files live in the structure directory as YAML (.yaml, .yml) or JSON
// (.json, .jsonc; comments and trailing commas allowed) documents with a
// top-level "rules" list. Files are read in lexical name order and rules are
// evaluated in declaration order, each against the tree as left by the rules
// before it:
//
//	rules:
//	  - name: blog
//	    kind: paginate
//	    source: "blog/**/*.html"
//	    exclude: ["blog/drafts/**"]
//	    sortBy: date
//	    reverse: true
//	    pageSize: 10
//	    first: blog/index.html
//	    target: "blog/page/{{.currentPage}}.html"
//	    metadata:
//	      layout: list.html
//
// Targets are text/template strings; referencing an unknown key is an error.
package structure
