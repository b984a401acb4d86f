// Package stages holds the per-file transformation stages of the page
// pipeline: Markdown conversion, HTML minification, precompression and the
// build manifest.
package stages
